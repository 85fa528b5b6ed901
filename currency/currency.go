package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix used across the app.
const Symbol = "R$"

// Parse reads a BRL money string ("R$ 1.234,56", "1234,56", "-R$ 10",
// "1234.56") into an exact decimal. The round-trip contract is
// Format(Parse(s)) == Format(Parse(Format(Parse(s)))) for every accepted s.
func Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(raw, "-") {
		negative = true
		raw = strings.TrimSpace(raw[1:])
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, Symbol))
	if strings.HasPrefix(raw, "-") {
		negative = true
		raw = strings.TrimSpace(raw[1:])
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	normalized, err := normalizeSeparators(raw)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseFloat is Parse for callers that work on float64 amounts.
func ParseFloat(s string) (float64, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// Format renders a decimal as a BRL money string with dot thousands
// separators and a comma decimal mark, always two decimal places.
func Format(d decimal.Decimal) string {
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := Symbol + " " + strings.Join(groups, ".") + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatFloat is Format for float64 amounts.
func FormatFloat(f float64) string {
	return Format(decimal.NewFromFloat(f))
}

// Round2 rounds a float amount to two decimal places, half away from zero.
func Round2(f float64) float64 {
	r, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return r
}

// normalizeSeparators turns a digits-and-separators string into a plain
// dot-decimal number. When both separators appear the rightmost one is the
// decimal mark. A lone separator followed by exactly three digits is read as
// a thousands separator for the dot (Brazilian writing) and as a decimal
// mark for the comma.
func normalizeSeparators(raw string) (string, error) {
	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", 1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(raw, ",") > 1 {
			return "", fmt.Errorf("invalid amount %q", raw)
		}
		raw = strings.Replace(raw, ",", ".", 1)
	case lastDot >= 0:
		if strings.Count(raw, ".") > 1 {
			// multiple dots can only be thousands separators
			raw = strings.ReplaceAll(raw, ".", "")
		} else if len(raw)-lastDot-1 == 3 {
			raw = strings.ReplaceAll(raw, ".", "")
		}
	}
	return raw, nil
}
