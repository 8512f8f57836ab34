// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the conversion packages and
// the CLI: host items, conversion requests, rendered pages, the node
// description, and configuration.
package types

import "fmt"

// Format is an output raster format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatJPEG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q: use png or jpeg", s)
}

// MimeType returns the MIME type written into output binary data.
func (f Format) MimeType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension (without dot) for output files.
func (f Format) Extension() string {
	return string(f)
}

// ConversionRequest is the fully resolved input for converting one item.
// It is built once from the node parameters and never modified afterwards.
type ConversionRequest struct {
	// SourceBytes is the raw PDF document.
	SourceBytes []byte

	// Format selects png or jpeg output.
	Format Format

	// Quality is the JPEG quality (1-100). Ignored for png.
	Quality int

	// DensityDPI is the rendering resolution (72-600).
	DensityDPI int

	// Width and Height are optional target sizes in pixels. Nil means the
	// renderer picks the size from DensityDPI.
	Width  *int
	Height *int

	// AllPages renders the whole document when true; otherwise
	// PageRangeSpec selects the pages.
	AllPages bool

	// PageRangeSpec is a page-range string such as "1-3,5".
	PageRangeSpec string

	// OutputFieldName is the binary property the images are stored under.
	OutputFieldName string
}

// RenderedPage is one rasterized page held in memory.
type RenderedPage struct {
	PageNumber int
	TotalPages int
	ImageBytes []byte
	FileName   string
	MimeType   string
}
