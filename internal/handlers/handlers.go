// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

// Package handlers maps the HTTP API onto the account workflow. Domain
// errors are translated to status codes here; the workflow itself knows
// nothing about HTTP.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustedge/companyd/internal/services/account"
	"github.com/trustedge/companyd/internal/services/storage"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	accounts *account.Service
	storage  *storage.Service
}

// New creates a new Handlers instance.
func New(accounts *account.Service, store *storage.Service) *Handlers {
	return &Handlers{accounts: accounts, storage: store}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// message writes a JSON body with a single message field.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}
