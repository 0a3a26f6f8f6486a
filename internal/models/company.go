// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Company is a registered organization account. Authentication is keyed by
// email; CompanyID is the human-facing identifier chosen at signup.
type Company struct { //nolint:govet // fieldalignment: readability over optimization
	ID                         int64          `db:"id" json:"id"`
	CompanyID                  string         `db:"company_id" json:"companyId"`
	CompanyName                string         `db:"company_name" json:"companyName"`
	Service                    string         `db:"service" json:"service"`
	Email                      string         `db:"email" json:"email"`
	Phone                      string         `db:"phone" json:"phone"`
	Address                    string         `db:"address" json:"address"`
	PasswordHash               string         `db:"password_hash" json:"-"`
	Logo                       sql.NullString `db:"logo" json:"logo"`
	EmailVerified              bool           `db:"email_verified" json:"emailVerified"`
	VerificationToken          sql.NullString `db:"verification_token" json:"-"`
	VerificationTokenExpiresAt sql.NullTime   `db:"verification_token_expires_at" json:"-"`
	CreatedAt                  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt                  time.Time      `db:"updated_at" json:"updated_at"`
}

// SetVerificationToken stores a pending verification token with its expiry.
// Token and expiry are always written together.
func (c *Company) SetVerificationToken(token string, expiresAt time.Time) {
	c.VerificationToken = sql.NullString{String: token, Valid: true}
	c.VerificationTokenExpiresAt = sql.NullTime{Time: expiresAt, Valid: true}
}

// ClearVerificationToken removes a pending verification token and its expiry.
func (c *Company) ClearVerificationToken() {
	c.VerificationToken = sql.NullString{}
	c.VerificationTokenExpiresAt = sql.NullTime{}
}

// TokenExpired reports whether the pending verification token has expired.
// A company without a token counts as expired.
func (c *Company) TokenExpired(now time.Time) bool {
	if !c.VerificationTokenExpiresAt.Valid {
		return true
	}
	return !c.VerificationTokenExpiresAt.Time.After(now)
}
