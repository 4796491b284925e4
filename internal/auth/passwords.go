package auth

import (
	hiremateErrors "hiremate/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string, cost int) (string, error) {
	if len(password) < MinPasswordLength {
		return "", hiremateErrors.NewValidationError(hiremateErrors.ErrCodeInvalidRequest,
			"Password must be at least 6 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", hiremateErrors.NewInternalError("PASSWORD_HASH_FAILED",
			"Failed to hash password", err)
	}

	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash. Returns
// an auth error on mismatch so handlers map it to 401 without leaking which
// part of the credentials was wrong.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return hiremateErrors.NewAuthError(hiremateErrors.ErrCodeInvalidCredentials,
			"Invalid email or password", err)
	}
	return nil
}
