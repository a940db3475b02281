package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Work factor 12 keeps a single verification in the tens of milliseconds,
// which is the point: offline brute force has to pay the same cost per guess.
const bcryptCost = 12

// HashPassword hashes a plaintext password using bcrypt. The salt is
// embedded in the output, so hashing the same input twice yields different
// strings.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with a stored hash. A hash
// that does not carry the bcrypt version prefix fails with
// ErrInvalidCredentialFormat rather than a silent mismatch, so corrupted or
// legacy rows surface loudly.
func VerifyPassword(hash, password string) error {
	if !strings.HasPrefix(hash, "$2") {
		return ErrInvalidCredentialFormat
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	if errors.Is(err, bcrypt.ErrHashTooShort) {
		return ErrInvalidCredentialFormat
	}
	return err
}
