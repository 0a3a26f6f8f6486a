// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package account

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationToken(t *testing.T) {
	token, expiresAt, err := newVerificationToken()

	require.NoError(t, err)

	// 32 random bytes, hex-encoded
	assert.Len(t, token, 64)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func TestNewVerificationToken_Unique(t *testing.T) {
	seen := make(map[string]bool)

	for range 10 {
		token, _, err := newVerificationToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}
