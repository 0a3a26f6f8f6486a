// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package account

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the hashes minted by earlier deployments so existing
// credentials keep verifying.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A
// malformed hash is treated as a mismatch, never an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
