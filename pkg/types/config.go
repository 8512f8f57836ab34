// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RendererBackend identifies the tool that rasterizes PDF pages.
type RendererBackend string

const (
	BackendPoppler RendererBackend = "poppler"
	BackendFitz    RendererBackend = "fitz"
)

// RendererConfig holds settings for the external renderer.
type RendererConfig struct {
	// Backend selects the renderer: poppler (pdftoppm) or fitz (MuPDF).
	Backend RendererBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PdftoppmPath overrides the pdftoppm binary looked up on PATH.
	PdftoppmPath string `json:"pdftoppm_path,omitempty" yaml:"pdftoppm_path,omitempty" mapstructure:"pdftoppm_path"`
}

// ConversionConfig holds the node defaults applied to every item unless an
// item overrides them. Field names mirror the node parameters.
type ConversionConfig struct {
	PDFBinaryProperty    string `json:"pdfBinaryProperty" yaml:"pdf_binary_property" mapstructure:"pdf_binary_property"`
	Format               string `json:"format" yaml:"format" mapstructure:"format"`
	Quality              int    `json:"quality" yaml:"quality" mapstructure:"quality"`
	Density              int    `json:"density" yaml:"density" mapstructure:"density"`
	Width                int    `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height               int    `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
	ConvertAllPages      bool   `json:"convertAllPages" yaml:"convert_all_pages" mapstructure:"convert_all_pages"`
	PageRange            string `json:"pageRange" yaml:"page_range" mapstructure:"page_range"`
	OutputBinaryProperty string `json:"outputBinaryProperty" yaml:"output_binary_property" mapstructure:"output_binary_property"`
}

// Parameters returns the config as host node parameters. Zero width and
// height are left out so they resolve as unset.
func (c ConversionConfig) Parameters() map[string]any {
	p := map[string]any{
		"operation":            "convert",
		"pdfBinaryProperty":    c.PDFBinaryProperty,
		"format":               c.Format,
		"quality":              c.Quality,
		"density":              c.Density,
		"convertAllPages":      c.ConvertAllPages,
		"pageRange":            c.PageRange,
		"outputBinaryProperty": c.OutputBinaryProperty,
	}
	if c.Width > 0 {
		p["width"] = c.Width
	}
	if c.Height > 0 {
		p["height"] = c.Height
	}
	return p
}

// RunConfig groups everything the convert command needs.
type RunConfig struct {
	Renderer   RendererConfig   `json:"renderer" yaml:"renderer" mapstructure:"renderer"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`

	// ScratchDir is the parent directory for per-item scratch directories.
	// Empty means the system temp directory.
	ScratchDir string `json:"scratch_dir,omitempty" yaml:"scratch_dir,omitempty" mapstructure:"scratch_dir"`

	// ContinueOnFail records per-item failures instead of aborting the batch.
	ContinueOnFail bool `json:"continue_on_fail" yaml:"continue_on_fail" mapstructure:"continue_on_fail"`

	// OutDir is where the CLI writes rendered images.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`
}
