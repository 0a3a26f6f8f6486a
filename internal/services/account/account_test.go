// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package account_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustedge/companyd/internal/repository"
	"github.com/trustedge/companyd/internal/services/account"
	"github.com/trustedge/companyd/internal/services/session"
	"github.com/trustedge/companyd/internal/testutil"
)

const frontendURL = "https://app.example.com"

func newTestService(t *testing.T) (*account.Service, *repository.Repository, *testutil.FakeSender, *session.Issuer) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	sender := &testutil.FakeSender{}
	issuer, err := session.NewIssuer("test-secret")
	require.NoError(t, err)
	svc := account.NewService(repo, sender, issuer, frontendURL)
	return svc, repo, sender, issuer
}

func validSignup() account.SignupParams {
	return account.SignupParams{
		CompanyID:   "acme",
		CompanyName: "Acme Inc",
		Service:     "Logistics",
		Email:       "a@x.com",
		Phone:       "555-0100",
		Address:     "1 Main St",
		Password:    "Abcdef1!",
	}
}

func TestSignup(t *testing.T) {
	svc, repo, sender, _ := newTestService(t)
	ctx := context.Background()

	err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "acme", c.CompanyID)
	assert.False(t, c.EmailVerified)
	assert.True(t, account.CheckPassword("Abcdef1!", c.PasswordHash))

	require.True(t, c.VerificationToken.Valid)
	assert.Len(t, c.VerificationToken.String, 64)
	require.True(t, c.VerificationTokenExpiresAt.Valid)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), c.VerificationTokenExpiresAt.Time, time.Minute)

	mail := sender.Last(t)
	assert.Equal(t, "a@x.com", mail.To)
	assert.Equal(t, frontendURL+"/verify-email?token="+c.VerificationToken.String, mail.Link)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))

	first, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	dup := validSignup()
	dup.CompanyID = "other"
	err = svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, account.ErrCompanyExists)

	// The first account is untouched.
	after, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.CompanyID, after.CompanyID)
	assert.Equal(t, first.VerificationToken, after.VerificationToken)
}

func TestSignup_DuplicateCompanyID(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))

	dup := validSignup()
	dup.Email = "b@x.com"
	err := svc.Signup(ctx, dup)

	assert.ErrorIs(t, err, account.ErrCompanyExists)
}

func TestSignup_InvalidEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	params := validSignup()
	params.Email = "not-an-email"
	err := svc.Signup(context.Background(), params)

	assert.ErrorIs(t, err, account.ErrInvalidEmail)
}

func TestSignup_MailFailureDoesNotRollBack(t *testing.T) {
	svc, repo, sender, _ := newTestService(t)
	ctx := context.Background()

	sender.Err = assert.AnError

	err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	// The account exists despite the failed delivery; resend recovers.
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, c.VerificationToken.Valid)

	sender.Err = nil
	require.NoError(t, svc.ResendVerification(ctx, "a@x.com"))
	assert.Equal(t, "a@x.com", sender.Last(t).To)
}

func TestLogin_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "missing@x.com", "Abcdef1!")

	assert.ErrorIs(t, err, account.ErrCompanyNotFound)
}

func TestLogin_UnverifiedResendsToken(t *testing.T) {
	svc, repo, sender, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	before, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	oldToken := before.VerificationToken.String

	// The password is irrelevant on this path.
	res, err := svc.Login(ctx, "a@x.com", "definitely-wrong")
	require.NoError(t, err)
	assert.True(t, res.VerificationPending)
	assert.False(t, res.EmailVerified)
	assert.Empty(t, res.Token)

	after, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, after.VerificationToken.Valid)
	assert.NotEqual(t, oldToken, after.VerificationToken.String)

	// The replaced token is no longer redeemable.
	assert.ErrorIs(t, svc.VerifyEmail(ctx, oldToken), account.ErrInvalidOrExpiredToken)

	mail := sender.Last(t)
	assert.Contains(t, mail.Link, after.VerificationToken.String)
}

func TestLogin_VerifiedSuccess(t *testing.T) {
	svc, repo, _, issuer := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, c.VerificationToken.String))

	res, err := svc.Login(ctx, "a@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.True(t, res.EmailVerified)
	assert.False(t, res.VerificationPending)
	require.NotEmpty(t, res.Token)

	claims, err := issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "acme", claims.CompanyID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestLogin_VerifiedWrongPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, c.VerificationToken.String))

	_, err = svc.Login(ctx, "a@x.com", "wrong")

	assert.ErrorIs(t, err, account.ErrInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(ctx, c.VerificationToken.String))

	verified, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.False(t, verified.VerificationToken.Valid)
	assert.False(t, verified.VerificationTokenExpiresAt.Valid)
}

func TestVerifyEmail_SingleUse(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	token := c.VerificationToken.String

	require.NoError(t, svc.VerifyEmail(ctx, token))

	// The token was cleared on first success.
	assert.ErrorIs(t, svc.VerifyEmail(ctx, token), account.ErrInvalidOrExpiredToken)
}

func TestVerifyEmail_Expired(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	token := c.VerificationToken.String

	c.SetVerificationToken(token, time.Now().Add(-time.Second))
	require.NoError(t, repo.SaveCompany(ctx, c))

	err = svc.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, account.ErrInvalidOrExpiredToken)

	// Expired redemption must not flip the verified flag.
	after, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, after.EmailVerified)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.VerifyEmail(context.Background(), strings.Repeat("ab", 32))

	assert.ErrorIs(t, err, account.ErrInvalidOrExpiredToken)
}

func TestVerifyEmail_EmptyToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.VerifyEmail(context.Background(), "")

	assert.ErrorIs(t, err, account.ErrInvalidOrExpiredToken)
}

func TestResendVerification(t *testing.T) {
	svc, repo, sender, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	before, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	oldToken := before.VerificationToken.String

	require.NoError(t, svc.ResendVerification(ctx, "a@x.com"))

	after, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, after.VerificationToken.Valid)
	assert.NotEqual(t, oldToken, after.VerificationToken.String)
	assert.Len(t, sender.Sent, 2)
}

func TestResendVerification_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.ResendVerification(context.Background(), "missing@x.com")

	assert.ErrorIs(t, err, account.ErrCompanyNotFound)
}

func TestResendVerification_AlreadyVerified(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, c.VerificationToken.String))

	err = svc.ResendVerification(ctx, "a@x.com")
	assert.ErrorIs(t, err, account.ErrAlreadyVerified)

	// No token fields are mutated by a rejected resend.
	after, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, after.EmailVerified)
	assert.False(t, after.VerificationToken.Valid)
	assert.False(t, after.VerificationTokenExpiresAt.Valid)
}

// Verified is terminal: nothing in the workflow moves an account back.
func TestVerifiedStateIsTerminal(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup()))
	c, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(ctx, c.VerificationToken.String))

	_, err = svc.Login(ctx, "a@x.com", "Abcdef1!")
	require.NoError(t, err)

	after, err := repo.FindCompanyByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, after.EmailVerified)
	assert.False(t, after.VerificationToken.Valid)
}
