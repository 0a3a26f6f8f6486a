// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")

	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1!", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	require.NoError(t, err)

	assert.True(t, CheckPassword("Abcdef1!", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestCheckPassword_DistinctPlaintexts(t *testing.T) {
	hash, err := HashPassword("first-password")
	require.NoError(t, err)

	assert.False(t, CheckPassword("second-password", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// A malformed hash is a mismatch, never a panic or error.
	assert.False(t, CheckPassword("Abcdef1!", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("Abcdef1!", ""))
}
