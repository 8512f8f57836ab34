// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a ConversionRequest into rendered pages and packages
// those pages as output items.
package convert

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf2image/internal/pagerange"
	"github.com/pdiddy/pdf2image/internal/render"
	"github.com/pdiddy/pdf2image/pkg/types"
)

// Adapter drives a render.Renderer for one request. It reads the files the
// renderer produces but never deletes them; the caller owns the output
// directory.
type Adapter struct {
	renderer render.Renderer
	logger   *zap.Logger
}

// NewAdapter creates an adapter around r.
func NewAdapter(r render.Renderer, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{renderer: r, logger: logger}
}

// Render rasterizes the PDF at pdfPath into outDir.
//
// With AllPages the renderer is called once and TotalPages is the number of
// pages it reports. Otherwise the page range is resolved and the renderer
// is called once per page in ascending order; TotalPages is then the size
// of the selection, because no whole-document count is taken on that path.
// A selected page below 1 fails the request before any page is rendered.
// Renderer errors are returned unmodified.
func (a *Adapter) Render(ctx context.Context, req types.ConversionRequest, pdfPath, outDir string) ([]types.RenderedPage, error) {
	base := Options(req, outDir)

	var produced []render.Page
	if req.AllPages {
		pages, err := a.renderer.Render(ctx, pdfPath, base)
		if err != nil {
			return nil, err
		}
		produced = pages
	} else {
		selection, err := pagerange.Resolve(req.PageRangeSpec)
		if err != nil {
			return nil, err
		}
		for _, n := range selection {
			if n < 1 {
				return nil, &render.Error{
					Tool: a.renderer.Name(),
					Err:  fmt.Errorf("wrong page range given: page %d does not exist, pages start at 1", n),
				}
			}
			opts := base
			opts.FirstPage, opts.LastPage = n, n
			pages, err := a.renderer.Render(ctx, pdfPath, opts)
			if err != nil {
				return nil, err
			}
			produced = append(produced, pages...)
		}
	}

	total := len(produced)
	out := make([]types.RenderedPage, 0, total)
	for _, p := range produced {
		data, err := os.ReadFile(p.Path)
		if err != nil {
			return nil, fmt.Errorf("reading rendered page %d: %w", p.Number, err)
		}
		out = append(out, types.RenderedPage{
			PageNumber: p.Number,
			TotalPages: total,
			ImageBytes: data,
			FileName:   FileName(p.Number, req.Format),
			MimeType:   req.Format.MimeType(),
		})
	}

	a.logger.Debug("rendered document",
		zap.String("renderer", a.renderer.Name()),
		zap.Bool("all_pages", req.AllPages),
		zap.Int("pages", total),
	)
	return out, nil
}

// Options assembles the renderer options for req in one step. Quality only
// applies to jpeg and unset sizes stay zero.
func Options(req types.ConversionRequest, outDir string) render.Options {
	opts := render.DefaultOptions()
	opts.Format = req.Format
	opts.DPI = req.DensityDPI
	opts.OutDir = outDir
	opts.Quality = 0
	if req.Format == types.FormatJPEG {
		opts.Quality = req.Quality
	}
	if req.Width != nil {
		opts.Width = *req.Width
	}
	if req.Height != nil {
		opts.Height = *req.Height
	}
	return opts
}

// FileName is the output file name for a page, e.g. "page_3.png".
func FileName(page int, format types.Format) string {
	return fmt.Sprintf("page_%d.%s", page, format.Extension())
}
