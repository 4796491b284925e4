package auth

import (
	"testing"

	"hiremate/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "correct-horse" {
		t.Fatal("Hash must not equal the plaintext password")
	}

	if err := CheckPassword(hash, "correct-horse"); err != nil {
		t.Errorf("Correct password should verify: %v", err)
	}

	err = CheckPassword(hash, "wrong-password")
	if err == nil {
		t.Fatal("Wrong password should be rejected")
	}
	if errors.TypeOf(err) != errors.ErrorTypeAuth {
		t.Errorf("Expected auth error, got type %q", errors.TypeOf(err))
	}
}

func TestPasswordMinimumLength(t *testing.T) {
	_, err := HashPassword("short", bcrypt.MinCost)
	if err == nil {
		t.Fatal("Passwords under 6 characters should be rejected")
	}
	if errors.TypeOf(err) != errors.ErrorTypeValidation {
		t.Errorf("Expected validation error, got type %q", errors.TypeOf(err))
	}

	// Exactly 6 characters is accepted
	if _, err := HashPassword("sixchr", bcrypt.MinCost); err != nil {
		t.Errorf("6-character password should be accepted: %v", err)
	}
}
