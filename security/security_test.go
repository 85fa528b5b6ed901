package security

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Error("hash should not equal the plaintext password")
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password!") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("expected error for password under minimum length")
	}
}

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("user-1", "maria")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("expected a three-part JWT, got %q", token)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected userId user-1, got %s", claims.UserID)
	}
	if claims.Username != "maria" {
		t.Errorf("expected username maria, got %s", claims.Username)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := IssueToken("user-1", "maria")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Error("expected error for tampered signature")
	}
}
