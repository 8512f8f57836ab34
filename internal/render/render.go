// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes PDF pages into image files through an external
// renderer: poppler's pdftoppm or MuPDF via go-fitz.
package render

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf2image/pkg/types"
)

const (
	defaultDPI     = 150
	defaultQuality = 85
	defaultPrefix  = "page"
)

// Options controls a single renderer call.
type Options struct {
	// Format selects png or jpeg output.
	Format types.Format

	// DPI is the rendering resolution.
	DPI int

	// Quality is the JPEG quality. Only used when Format is jpeg.
	Quality int

	// Width and Height scale the output. Zero leaves that axis to follow
	// the aspect ratio; both zero renders at DPI.
	Width  int
	Height int

	// FirstPage and LastPage bound the rendered pages (1-based, inclusive).
	// Zero means the start or end of the document.
	FirstPage int
	LastPage  int

	// OutDir receives the rendered files; Prefix names them.
	OutDir string
	Prefix string
}

// DefaultOptions returns png output at 150 DPI for the whole document.
func DefaultOptions() Options {
	return Options{
		Format:  types.FormatPNG,
		DPI:     defaultDPI,
		Quality: defaultQuality,
		Prefix:  defaultPrefix,
	}
}

// SinglePage reports whether the options select exactly one page.
func (o Options) SinglePage() bool {
	return o.FirstPage > 0 && o.FirstPage == o.LastPage
}

// Page is one rendered page on disk.
type Page struct {
	Number int
	Path   string
}

// Renderer rasterizes pages of a PDF file into OutDir. The returned pages
// are sorted by page number; their count is the page count the renderer
// observed for the requested span.
type Renderer interface {
	// Name returns the backend name ("poppler" or "fitz").
	Name() string

	// Render writes image files for the requested pages of pdfPath.
	Render(ctx context.Context, pdfPath string, opts Options) ([]Page, error)
}

// Error is a failure reported by the external renderer. Its message is the
// renderer's own diagnostic output, passed through without interpretation.
type Error struct {
	Tool   string
	Err    error
	Stderr string
}

func (e *Error) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Tool + " failed"
}

func (e *Error) Unwrap() error { return e.Err }

// New builds the renderer selected by cfg.Backend. An empty backend selects
// poppler.
func New(cfg types.RendererConfig, logger *zap.Logger) (Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case types.BackendPoppler, "":
		return NewPoppler(cfg.PdftoppmPath, logger), nil
	case types.BackendFitz:
		return NewFitz(logger), nil
	}
	return nil, fmt.Errorf("unknown renderer backend %q: use poppler or fitz", cfg.Backend)
}
