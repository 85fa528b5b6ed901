package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"R$1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"1.234.567,89", "1234567.89"},
		{"R$ 0,50", "0.5"},
		{"0.5", "0.5"},
		{"1.234", "1234"},
		{"-R$ 100,00", "-100"},
		{"R$ -100,00", "-100"},
		{"42", "42"},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.in, err)
			continue
		}
		want, _ := decimal.NewFromString(tt.want)
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "R$", "abc", "1,2,3"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should have failed", in)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.56, "R$ 1.234,56"},
		{0.5, "R$ 0,50"},
		{1234567.89, "R$ 1.234.567,89"},
		{-100, "-R$ 100,00"},
		{0, "R$ 0,00"},
		{85, "R$ 85,00"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Format(Parse(s)) must be stable: parsing the formatted output and
	// formatting again yields the same string.
	inputs := []string{"R$ 1.234,56", "1234.56", "0,5", "-R$ 99,90", "1.000.000,00"}
	for _, in := range inputs {
		d, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		once := Format(d)
		d2, err := Parse(once)
		if err != nil {
			t.Fatalf("Parse(Format(%q)) = Parse(%q): %v", in, once, err)
		}
		if twice := Format(d2); twice != once {
			t.Errorf("round trip for %q: %q != %q", in, once, twice)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(10.005); got != 10.01 {
		t.Errorf("Round2(10.005) = %v, want 10.01", got)
	}
	if got := Round2(-10.005); got != -10.01 {
		t.Errorf("Round2(-10.005) = %v, want -10.01", got)
	}
	if got := Round2(85.0); got != 85.0 {
		t.Errorf("Round2(85.0) = %v, want 85.0", got)
	}
}
