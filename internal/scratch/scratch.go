// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scratch manages the per-item working directory that holds the
// input PDF and the rendered images while one item is converted.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dirPrefix = "pdf2image-"

// Dir is an exclusively owned scratch directory. Release removes it.
type Dir struct {
	path   string
	logger *zap.Logger
}

// NewToken returns a random token suitable for Acquire.
func NewToken() string {
	return uuid.NewString()
}

// Acquire creates <base>/pdf2image-<token>. An empty base uses the system
// temp directory and an empty token is replaced by NewToken. Acquire fails
// if the directory already exists, so two holders never share one.
func Acquire(base, token string, logger *zap.Logger) (*Dir, error) {
	if base == "" {
		base = os.TempDir()
	}
	if token == "" {
		token = NewToken()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch base %s: %w", base, err)
	}

	path := filepath.Join(base, dirPrefix+token)
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Dir{path: path, logger: logger}, nil
}

// Path returns the directory path.
func (d *Dir) Path() string { return d.path }

// Join returns name inside the directory.
func (d *Dir) Join(name string) string { return filepath.Join(d.path, name) }

// Release removes the directory and everything in it. Errors are logged at
// debug level and otherwise ignored.
func (d *Dir) Release() {
	if err := os.RemoveAll(d.path); err != nil {
		d.logger.Debug("scratch cleanup failed", zap.String("path", d.path), zap.Error(err))
	}
}
