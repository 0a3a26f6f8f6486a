// Copyright 2026 The companyd authors
// Licensed under the EUPL-1.2

// Package storage stores uploaded company logos on local disk. The rest of
// the system only sees the returned path as an opaque string.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedFileType is returned for uploads that are not images.
var ErrUnsupportedFileType = errors.New("unsupported file type")

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Service writes uploaded files into a single directory.
type Service struct {
	dir string
}

// NewService creates the uploads directory if needed.
func NewService(dir string) (*Service, error) {
	if dir == "" {
		dir = "./data/uploads"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Service{dir: dir}, nil
}

// SaveLogo stores an uploaded logo under a unique name and returns the path
// recorded on the company account.
func (s *Service) SaveLogo(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := imageExtensions[ext]; !ok {
		return "", ErrUnsupportedFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating logo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing logo file: %w", err)
	}

	return path, nil
}
