// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

// Package account implements the company provisioning and email-verification
// workflow: signup, login with a verified-email gate, token redemption and
// verification resend.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/trustedge/companyd/internal/models"
	"github.com/trustedge/companyd/internal/repository"
	"github.com/trustedge/companyd/internal/services/email"
	"github.com/trustedge/companyd/internal/services/session"
)

var (
	ErrCompanyExists         = errors.New("company id or email already exists")
	ErrCompanyNotFound       = errors.New("company not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired verification token")
	ErrAlreadyVerified       = errors.New("email is already verified")
	ErrInvalidEmail          = errors.New("invalid email address")
)

// sendTimeout bounds a single verification mail delivery so a hung SMTP
// server cannot block the surrounding operation.
const sendTimeout = 10 * time.Second

// Service orchestrates the verification workflow. All collaborators are
// injected once at startup and reused across requests.
type Service struct {
	repo        *repository.Repository
	sender      email.Sender
	sessions    *session.Issuer
	frontendURL string
}

// NewService creates the account service.
func NewService(repo *repository.Repository, sender email.Sender, sessions *session.Issuer, frontendURL string) *Service {
	return &Service{
		repo:        repo,
		sender:      sender,
		sessions:    sessions,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

// SignupParams holds the parameters for company registration. Logo is the
// opaque path of an already-stored upload, or empty.
type SignupParams struct {
	CompanyID   string
	CompanyName string
	Service     string
	Email       string
	Phone       string
	Address     string
	Password    string
	Logo        string
}

// Signup registers a new unverified company and mails it a verification
// link. A failed mail delivery is logged but does not roll back the account;
// resending is the recovery path.
func (s *Service) Signup(ctx context.Context, params SignupParams) error {
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return ErrInvalidEmail
	}

	_, err := s.repo.FindCompanyByEmailOrID(ctx, params.Email, params.CompanyID)
	if err == nil {
		return ErrCompanyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("checking existing company: %w", err)
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return err
	}

	token, expiresAt, err := newVerificationToken()
	if err != nil {
		return err
	}

	c := &models.Company{
		CompanyID:    params.CompanyID,
		CompanyName:  params.CompanyName,
		Service:      params.Service,
		Email:        params.Email,
		Phone:        params.Phone,
		Address:      params.Address,
		PasswordHash: hash,
	}
	if params.Logo != "" {
		c.Logo = sql.NullString{String: params.Logo, Valid: true}
	}
	c.SetVerificationToken(token, expiresAt)

	if err := s.repo.InsertCompany(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrCompanyExists
		}
		return fmt.Errorf("creating company: %w", err)
	}

	s.sendVerification(ctx, c.Email, token)

	slog.Info("company_signup", "company_id", c.CompanyID, "email", c.Email)
	return nil
}

// LoginResult is the outcome of a successful login request. Either a
// session token was issued, or the email is unverified and a fresh
// verification mail went out (VerificationPending).
type LoginResult struct {
	Token               string
	EmailVerified       bool
	VerificationPending bool
}

// Login authenticates a company by email and password. An unverified
// company gets a fresh verification token instead of a credential check.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	c, err := s.repo.FindCompanyByEmail(ctx, emailAddr)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up company: %w", err)
	}

	if !c.EmailVerified {
		// Implicit resend. The password is deliberately not checked on
		// this path; the prior token is replaced and becomes unredeemable.
		if err := s.reissueToken(ctx, c); err != nil {
			return nil, err
		}
		slog.Info("company_login_pending_verification", "company_id", c.CompanyID)
		return &LoginResult{VerificationPending: true}, nil
	}

	if !CheckPassword(password, c.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(c.CompanyID, c.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing session token: %w", err)
	}

	slog.Info("company_login", "company_id", c.CompanyID)
	return &LoginResult{Token: token, EmailVerified: true}, nil
}

// VerifyEmail redeems a verification token. Tokens are single-use: success
// clears the stored token, so a second redemption of the same value fails
// like an unknown token.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	c, err := s.repo.FindCompanyByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		return fmt.Errorf("looking up verification token: %w", err)
	}

	// Expired and unknown tokens are indistinguishable to the caller.
	if c.TokenExpired(time.Now()) {
		return ErrInvalidOrExpiredToken
	}

	c.EmailVerified = true
	c.ClearVerificationToken()
	if err := s.repo.SaveCompany(ctx, c); err != nil {
		return fmt.Errorf("saving verified company: %w", err)
	}

	slog.Info("company_email_verified", "company_id", c.CompanyID)
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// company. Unlike the implicit resend during login, an explicit resend on an
// already-verified company is an error.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	c, err := s.repo.FindCompanyByEmail(ctx, emailAddr)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCompanyNotFound
	}
	if err != nil {
		return fmt.Errorf("looking up company: %w", err)
	}

	if c.EmailVerified {
		return ErrAlreadyVerified
	}

	if err := s.reissueToken(ctx, c); err != nil {
		return err
	}

	slog.Info("company_verification_resent", "company_id", c.CompanyID)
	return nil
}

// reissueToken replaces any pending verification token with a fresh one,
// persists it and mails the new link.
func (s *Service) reissueToken(ctx context.Context, c *models.Company) error {
	token, expiresAt, err := newVerificationToken()
	if err != nil {
		return err
	}

	c.SetVerificationToken(token, expiresAt)
	if err := s.repo.SaveCompany(ctx, c); err != nil {
		return fmt.Errorf("saving verification token: %w", err)
	}

	s.sendVerification(ctx, c.Email, token)
	return nil
}

// sendVerification mails a verification link. Delivery failures are logged
// and swallowed; the account state already persisted and resend remains
// available.
func (s *Service) sendVerification(ctx context.Context, toEmail, token string) {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := s.sender.SendVerification(ctx, toEmail, link); err != nil {
		slog.Warn("verification_email_failed", "email", toEmail, "error", err)
	}
}
