// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// verificationTokenBytes is the number of random bytes per token;
	// hex-encoded this yields a 64-character string.
	verificationTokenBytes = 32
	// verificationTokenTTL is how long verification tokens stay valid.
	verificationTokenTTL = 24 * time.Hour
)

// newVerificationToken draws a fresh verification token and its expiry.
// Collisions are treated as negligible and not checked against the store.
func newVerificationToken() (string, time.Time, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generating verification token: %w", err)
	}
	return hex.EncodeToString(buf), time.Now().Add(verificationTokenTTL), nil
}
