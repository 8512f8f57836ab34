// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf2image/pkg/types"
)

const toolFitz = "mupdf"

// Fitz renders pages in-process with MuPDF through go-fitz and encodes them
// with imaging.
type Fitz struct {
	logger *zap.Logger
}

// NewFitz creates a MuPDF renderer.
func NewFitz(logger *zap.Logger) *Fitz {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fitz{logger: logger}
}

func (f *Fitz) Name() string { return string(types.BackendFitz) }

// Render opens pdfPath, rasterizes each page in the requested span and
// writes <prefix>-<n>.<format> files into opts.OutDir.
func (f *Fitz) Render(ctx context.Context, pdfPath string, opts Options) ([]Page, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, &Error{Tool: toolFitz, Err: fmt.Errorf("unable to open PDF document: %w", err)}
	}
	defer doc.Close()

	first, last, err := pageSpan(opts, doc.NumPage())
	if err != nil {
		return nil, &Error{Tool: toolFitz, Err: err}
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}

	pages := make([]Page, 0, last-first+1)
	for n := first; n <= last; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(n-1, float64(dpi))
		if err != nil {
			return nil, &Error{Tool: toolFitz, Err: fmt.Errorf("unable to render page %d: %w", n, err)}
		}

		path := filepath.Join(opts.OutDir, prefixOrDefault(opts)+"-"+strconv.Itoa(n)+"."+opts.Format.Extension())
		if err := saveImage(scale(img, opts), path, opts); err != nil {
			return nil, &Error{Tool: toolFitz, Err: fmt.Errorf("writing page %d: %w", n, err)}
		}
		f.logger.Debug("rendered page", zap.Int("page", n), zap.String("path", path))
		pages = append(pages, Page{Number: n, Path: path})
	}
	return pages, nil
}

// pageSpan clamps the requested bounds to a document of numPages pages.
// Bounds that fall outside the document are an error.
func pageSpan(opts Options, numPages int) (first, last int, err error) {
	if numPages <= 0 {
		return 0, 0, fmt.Errorf("document has no pages")
	}
	first, last = 1, numPages
	if opts.FirstPage > 0 {
		first = opts.FirstPage
	}
	if opts.LastPage > 0 {
		last = opts.LastPage
	}
	if first > numPages || last > numPages {
		return 0, 0, fmt.Errorf("wrong page range given: document has %d pages, requested %d-%d", numPages, first, last)
	}
	if first > last {
		return 0, 0, fmt.Errorf("wrong page range given: first page %d is after last page %d", first, last)
	}
	return first, last, nil
}

// scale resizes img when a target size is set. A zero axis keeps the
// aspect ratio.
func scale(img image.Image, opts Options) image.Image {
	if opts.Width <= 0 && opts.Height <= 0 {
		return img
	}
	return imaging.Resize(img, opts.Width, opts.Height, imaging.Lanczos)
}

func saveImage(img image.Image, path string, opts Options) error {
	if opts.Format == types.FormatJPEG {
		q := opts.Quality
		if q <= 0 {
			q = defaultQuality
		}
		return imaging.Save(img, path, imaging.JPEGQuality(q))
	}
	return imaging.Save(img, path)
}
