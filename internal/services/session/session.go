// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

// Package session issues signed session tokens after successful login.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of a session token.
const TokenTTL = time.Hour

// Claims are the identity claims carried by a session token.
type Claims struct {
	CompanyID string `json:"companyId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer mints and parses HS256-signed session tokens.
type Issuer struct {
	secret []byte
}

// NewIssuer creates a session token issuer with the given signing secret.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Issuer{secret: []byte(secret)}, nil
}

// Issue creates a signed session token for the given company identity,
// valid for TokenTTL from now.
func (i *Issuer) Issue(companyID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		CompanyID: companyID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return token, nil
}

// Parse validates a session token and returns its claims.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
