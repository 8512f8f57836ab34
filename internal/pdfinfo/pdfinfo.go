// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo inspects PDF documents without rendering them.
package pdfinfo

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info describes one PDF file.
type Info struct {
	Path  string `json:"path" yaml:"path"`
	Pages int    `json:"pages" yaml:"pages"`
	Size  int64  `json:"size" yaml:"size"`
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Inspect returns the page count and file size of the PDF at path.
func Inspect(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("inspecting %s: %w", path, err)
	}
	n, err := PageCount(path)
	if err != nil {
		return Info{}, err
	}
	return Info{Path: path, Pages: n, Size: st.Size()}, nil
}
