package security

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(10)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if len(password) != 10 {
		t.Errorf("expected length 10, got %d", len(password))
	}
	for _, c := range password {
		if !strings.ContainsRune(passwordChars, c) {
			t.Errorf("unexpected character %q in password", c)
		}
	}
}

func TestGeneratePasswordOmitsAmbiguousCharacters(t *testing.T) {
	for _, ambiguous := range "IlO01" {
		if strings.ContainsRune(passwordChars, ambiguous) {
			t.Errorf("ambiguous character %q should not be in the alphabet", ambiguous)
		}
	}
}

func TestGeneratePasswordRejectsBadLength(t *testing.T) {
	if _, err := GeneratePassword(0); err == nil {
		t.Error("expected an error for length 0")
	}
	if _, err := GeneratePassword(-3); err == nil {
		t.Error("expected an error for negative length")
	}
}

func TestGeneratePasswordsDiffer(t *testing.T) {
	a, err := GeneratePassword(10)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	b, err := GeneratePassword(10)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if a == b {
		t.Error("expected two generated passwords to differ")
	}
}
