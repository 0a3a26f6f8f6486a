// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"github.com/trustedge/companyd/internal/database"
	"github.com/trustedge/companyd/internal/models"
	"github.com/trustedge/companyd/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	// In-memory SQLite is per-connection; keep the pool on one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, repository.New(db)
}

// NewTestCompany inserts a company fixture. The account starts unverified
// with no pending token; tests mutate it from there.
func NewTestCompany(t *testing.T, repo *repository.Repository, companyID, email string) *models.Company {
	t.Helper()
	c := &models.Company{
		CompanyID:    companyID,
		CompanyName:  companyID + " Inc",
		Service:      "Logistics",
		Email:        email,
		Phone:        "555-0100",
		Address:      "1 Main St",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, repo.InsertCompany(context.Background(), c))
	return c
}

// SentMail records one delivery made through a FakeSender.
type SentMail struct {
	To   string
	Link string
}

// FakeSender implements email.Sender for tests, recording every send. Set
// Err to simulate delivery failures.
type FakeSender struct {
	mu   sync.Mutex
	Err  error
	Sent []SentMail
}

func (f *FakeSender) SendVerification(_ context.Context, toEmail, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, SentMail{To: toEmail, Link: link})
	return nil
}

// Last returns the most recent delivery.
func (f *FakeSender) Last(t *testing.T) SentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.Sent, "no mail was sent")
	return f.Sent[len(f.Sent)-1]
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
