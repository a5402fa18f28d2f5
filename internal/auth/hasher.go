// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Hashes are salted per call; verification is constant-time

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from a plaintext password.
// Every call produces a different hash for the same input.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether candidate matches the stored bcrypt hash.
// A mismatch returns false; it never errors for a well-formed hash.
func VerifyPassword(candidate, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
