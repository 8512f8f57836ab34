// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2image/internal/host"
	"github.com/pdiddy/pdf2image/internal/node"
	"github.com/pdiddy/pdf2image/internal/render"
	"github.com/pdiddy/pdf2image/pkg/types"
)

const defaultOutDir = "images"

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs...]",
	Short: "Convert PDF files to page images",
	Long: `Convert renders each input PDF to one image per page. Inputs are PDF paths
or a YAML manifest (--manifest) listing items with their JSON fields, binary
attachments and per-item parameter overrides.

Images are written to --out-dir as <source>_page_<n>.<format>. With --json the
output items, including base64 image data, are printed to stdout instead.

By default the first failing item aborts the batch. With --continue-on-fail
the failure is recorded on that item and the batch carries on.`,
	RunE: runConvert,
}

func init() {
	defaults := node.DefaultConfig()

	f := convertCmd.Flags()
	f.String("manifest", "", "YAML manifest describing the input items")
	f.String("renderer", string(types.BackendPoppler), "renderer backend: poppler or fitz")
	f.String("pdftoppm", "", "path to the pdftoppm binary (default: looked up on PATH)")
	f.String("pdf-property", defaults.PDFBinaryProperty, "binary property holding the PDF")
	f.String("format", defaults.Format, "output format: png or jpeg")
	f.Int("quality", defaults.Quality, "JPEG quality (1-100)")
	f.Int("density", defaults.Density, "rendering DPI (72-600)")
	f.Int("width", 0, "output width in pixels (>= 100, 0 for auto)")
	f.Int("height", 0, "output height in pixels (>= 100, 0 for auto)")
	f.Bool("all-pages", defaults.ConvertAllPages, "convert every page; set false to use --page-range")
	f.String("page-range", defaults.PageRange, `pages to convert when --all-pages=false, e.g. "1-5" or "1,3,5"`)
	f.String("output-property", defaults.OutputBinaryProperty, "binary property for the rendered images")
	f.Bool("continue-on-fail", false, "record item failures instead of aborting the batch")
	f.String("scratch-dir", "", "parent directory for per-item scratch directories (default: system temp)")
	f.String("out-dir", defaultOutDir, "directory for rendered images")
	f.Bool("json", false, "print output items as JSON instead of writing image files")

	bindings := map[string]string{
		"renderer.backend":                  "renderer",
		"renderer.pdftoppm_path":            "pdftoppm",
		"conversion.pdf_binary_property":    "pdf-property",
		"conversion.format":                 "format",
		"conversion.quality":                "quality",
		"conversion.density":                "density",
		"conversion.width":                  "width",
		"conversion.height":                 "height",
		"conversion.convert_all_pages":      "all-pages",
		"conversion.page_range":             "page-range",
		"conversion.output_binary_property": "output-property",
		"continue_on_fail":                  "continue-on-fail",
		"scratch_dir":                       "scratch-dir",
		"out_dir":                           "out-dir",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}

// loadRunConfig reads the merged flag, config file and environment values.
func loadRunConfig() (types.RunConfig, error) {
	var cfg types.RunConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = defaultOutDir
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	if manifest == "" && len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files or --manifest")
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	r, err := render.New(cfg.Renderer, logger)
	if err != nil {
		return err
	}

	params := cfg.Conversion.Parameters()
	var ec *host.Static
	if manifest != "" {
		ec, err = host.LoadManifest(manifest, params, cfg.ContinueOnFail)
	} else {
		ec, err = host.FromFiles(args, cfg.Conversion.PDFBinaryProperty, params, cfg.ContinueOnFail)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := node.New(r, node.WithLogger(logger), node.WithScratchBase(cfg.ScratchDir))

	var status io.Writer = os.Stdout
	if jsonOutput {
		status = os.Stderr
	}
	result, err := n.ExecuteBatch(ctx, ec, status)
	if err != nil {
		return err
	}

	items := result.Outputs[0]
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return err
		}
	} else {
		written, err := writeImages(cfg.OutDir, items)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d image(s) to %s\n", written, cfg.OutDir)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d item(s) failed conversion", result.Failed)
	}
	return nil
}

// writeImages decodes every binary attachment of items into outDir. Files
// are named <source stem>_<fileName>; items without a source use their
// position in the output. When two sources share a stem, the later file
// gets its output position appended to the stem instead of overwriting.
func writeImages(outDir string, items []types.Item) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", outDir, err)
	}

	written := 0
	used := make(map[string]bool)
	for i, it := range items {
		for prop, bin := range it.Binary {
			data, err := base64.StdEncoding.DecodeString(bin.Data)
			if err != nil {
				return written, fmt.Errorf("decoding %s of output %d: %w", prop, i, err)
			}
			name := bin.FileName
			if name == "" {
				name = prop
			}
			stem := outputStem(it, i)
			path := filepath.Join(outDir, stem+"_"+name)
			for k := i + 1; used[path]; k++ {
				path = filepath.Join(outDir, fmt.Sprintf("%s-%d_%s", stem, k, name))
			}
			used[path] = true
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return written, fmt.Errorf("writing %s: %w", path, err)
			}
			written++
		}
	}
	return written, nil
}

func outputStem(it types.Item, i int) string {
	if src, ok := it.JSON["source"].(string); ok && src != "" {
		base := filepath.Base(src)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fmt.Sprintf("output-%d", i+1)
}
