// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustedge/companyd/internal/services/account"
	"github.com/trustedge/companyd/internal/services/storage"
)

// SignupRequest is the request body for company registration. It binds from
// JSON or multipart form data; the optional companyLogo file is read
// separately from the form.
type SignupRequest struct {
	CompanyID   string `json:"companyId" form:"companyId"`
	CompanyName string `json:"companyName" form:"companyName"`
	Service     string `json:"service" form:"service"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Address     string `json:"address" form:"address"`
	Password    string `json:"password" form:"password"`
}

// Signup registers a new company account.
func (h *Handlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request body.")
	}

	if req.CompanyID == "" || req.CompanyName == "" || req.Service == "" ||
		req.Email == "" || req.Phone == "" || req.Address == "" || req.Password == "" {
		return message(c, http.StatusBadRequest, "All fields are required.")
	}

	var logo string
	if file, err := c.FormFile("companyLogo"); err == nil {
		path, saveErr := h.storage.SaveLogo(file)
		if saveErr != nil {
			if errors.Is(saveErr, storage.ErrUnsupportedFileType) {
				return message(c, http.StatusBadRequest, "Only image files are allowed.")
			}
			slog.Error("logo_upload_failed", "error", saveErr)
			return message(c, http.StatusInternalServerError, "Server error. Please try again later.")
		}
		logo = path
	}

	err := h.accounts.Signup(c.Request().Context(), account.SignupParams{
		CompanyID:   req.CompanyID,
		CompanyName: req.CompanyName,
		Service:     req.Service,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Password:    req.Password,
		Logo:        logo,
	})
	switch {
	case err == nil:
		return message(c, http.StatusCreated,
			"Company registered successfully. Please check your email for verification.")
	case errors.Is(err, account.ErrCompanyExists):
		return message(c, http.StatusBadRequest, "Company ID or email already exists.")
	case errors.Is(err, account.ErrInvalidEmail):
		return message(c, http.StatusBadRequest, "Invalid email address.")
	default:
		slog.Error("signup_failed", "error", err)
		return message(c, http.StatusInternalServerError, "Server error. Please try again later.")
	}
}

// LoginRequest is the request body for company login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login authenticates a company. An unverified company receives a fresh
// verification mail and a pending-verification response instead of a token.
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return message(c, http.StatusBadRequest, "Email and password are required.")
	}

	res, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, account.ErrCompanyNotFound):
		return message(c, http.StatusNotFound, "Company not found.")
	case errors.Is(err, account.ErrInvalidCredentials):
		return message(c, http.StatusBadRequest, "Invalid credentials.")
	case err != nil:
		slog.Error("login_failed", "error", err)
		return message(c, http.StatusInternalServerError, "Server error. Please try again later.")
	}

	if res.VerificationPending {
		return c.JSON(http.StatusOK, map[string]any{
			"message":       "Email not verified. A verification email has been resent.",
			"emailVerified": false,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":       "Login successful.",
		"token":         res.Token,
		"emailVerified": true,
	})
}

// VerifyEmail redeems a verification token passed as a query parameter.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return message(c, http.StatusBadRequest, "No token provided.")
	}

	err := h.accounts.VerifyEmail(c.Request().Context(), token)
	switch {
	case err == nil:
		return message(c, http.StatusOK, "Email verified successfully.")
	case errors.Is(err, account.ErrInvalidOrExpiredToken):
		return message(c, http.StatusBadRequest, "Invalid or expired token.")
	default:
		slog.Error("verify_email_failed", "error", err)
		return message(c, http.StatusInternalServerError, "Server error. Please try again later.")
	}
}

// ResendRequest is the request body for resending a verification mail.
type ResendRequest struct {
	Email string `json:"email" form:"email"`
}

// ResendVerification issues a fresh verification mail for an unverified
// company.
func (h *Handlers) ResendVerification(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request body.")
	}
	if req.Email == "" {
		return message(c, http.StatusBadRequest, "Email is required.")
	}

	err := h.accounts.ResendVerification(c.Request().Context(), req.Email)
	switch {
	case err == nil:
		return message(c, http.StatusOK, "Verification email resent successfully.")
	case errors.Is(err, account.ErrCompanyNotFound):
		return message(c, http.StatusNotFound, "Company not found.")
	case errors.Is(err, account.ErrAlreadyVerified):
		return message(c, http.StatusBadRequest, "Email is already verified.")
	default:
		slog.Error("resend_verification_failed", "error", err)
		return message(c, http.StatusInternalServerError, "Server error. Please try again later.")
	}
}
