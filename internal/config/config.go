// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

package config

import (
	"fmt"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
	TLS      TLSConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

type AuthConfig struct {
	JWTSecret   string // symmetric signing key for session tokens
	FrontendURL string // base URL used in verification links
}

type UploadsConfig struct {
	Dir string
}

type TLSConfig struct {
	Mode     string // off, acme, manual
	CertDir  string // directory for ACME certificate cache
	Email    string // ACME email for Let's Encrypt
	CertFile string // path to certificate file (manual mode)
	KeyFile  string // path to private key file (manual mode)
}

// NewFromCLI builds a Config from parsed CLI flags.
func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		Auth: AuthConfig{
			JWTSecret:   cmd.String("jwt-secret"),
			FrontendURL: cmd.String("frontend-url"),
		},
		Uploads: UploadsConfig{
			Dir: cmd.String("uploads-dir"),
		},
		TLS: TLSConfig{
			Mode:     cmd.String("tls-mode"),
			CertDir:  cmd.String("tls-cert-dir"),
			Email:    cmd.String("tls-email"),
			CertFile: cmd.String("tls-cert-file"),
			KeyFile:  cmd.String("tls-key-file"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}
	if cfg.Auth.FrontendURL == "" {
		cfg.Auth.FrontendURL = cfg.Server.BaseURL
	}

	return cfg
}

// buildBaseURL derives the base URL from host, port and TLS mode.
func buildBaseURL(cfg *Config) string {
	scheme := "http"
	if cfg.TLS.Mode != "" && cfg.TLS.Mode != "off" {
		scheme = "https"
	}

	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}

	defaultPort := 80
	if scheme == "https" {
		defaultPort = 443
	}
	if cfg.Server.Port == defaultPort {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, cfg.Server.Port)
}

// IsLocalhost reports whether host refers to the local machine.
func IsLocalhost(host string) bool {
	switch strings.ToLower(host) {
	case "localhost", "127.0.0.1", "::1", "":
		return true
	}
	return false
}
