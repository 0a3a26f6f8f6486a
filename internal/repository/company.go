// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/trustedge/companyd/internal/models"
)

// InsertCompany creates a new company. Returns ErrConflict if the email or
// company ID is already taken.
func (r *Repository) InsertCompany(ctx context.Context, c *models.Company) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO companies
		 (company_id, company_name, service, email, phone, address, password_hash, logo,
		  email_verified, verification_token, verification_token_expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CompanyID, c.CompanyName, c.Service, c.Email, c.Phone, c.Address, c.PasswordHash,
		c.Logo, c.EmailVerified, c.VerificationToken, c.VerificationTokenExpiresAt,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// SaveCompany updates the mutable fields of an existing company in a single
// statement. Concurrent saves to the same row are last-writer-wins.
func (r *Repository) SaveCompany(ctx context.Context, c *models.Company) error {
	c.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`UPDATE companies
		 SET company_name = ?, service = ?, phone = ?, address = ?, password_hash = ?, logo = ?,
		     email_verified = ?, verification_token = ?, verification_token_expires_at = ?, updated_at = ?
		 WHERE id = ?`,
		c.CompanyName, c.Service, c.Phone, c.Address, c.PasswordHash, c.Logo,
		c.EmailVerified, c.VerificationToken, c.VerificationTokenExpiresAt, c.UpdatedAt,
		c.ID)
	return wrapError(err)
}

// FindCompanyByEmail retrieves a company by its email address.
func (r *Repository) FindCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	var c models.Company
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM companies WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &c, nil
}

// FindCompanyByEmailOrID retrieves a company matching either the email or the
// company ID. Used at signup to reject duplicates.
func (r *Repository) FindCompanyByEmailOrID(ctx context.Context, email, companyID string) (*models.Company, error) {
	var c models.Company
	err := r.db.GetContext(ctx, &c,
		`SELECT * FROM companies WHERE email = ? OR company_id = ?`, email, companyID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &c, nil
}

// FindCompanyByToken retrieves a company by its pending verification token.
// Expiry is deliberately not filtered here; the caller checks it so that
// expired and unknown tokens stay distinguishable internally.
func (r *Repository) FindCompanyByToken(ctx context.Context, token string) (*models.Company, error) {
	var c models.Company
	err := r.db.GetContext(ctx, &c,
		`SELECT * FROM companies WHERE verification_token = ?`, token)
	if err != nil {
		return nil, wrapError(err)
	}
	return &c, nil
}
