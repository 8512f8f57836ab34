// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf2image/pkg/types"
)

const binPdftoppm = "pdftoppm"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// Poppler renders pages by running pdftoppm from poppler-utils.
type Poppler struct {
	bin    string
	exec   executor
	logger *zap.Logger
}

// NewPoppler creates a pdftoppm renderer. An empty bin looks up pdftoppm on
// PATH at render time.
func NewPoppler(bin string, logger *zap.Logger) *Poppler {
	if bin == "" {
		bin = binPdftoppm
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poppler{bin: bin, exec: defaultExec, logger: logger}
}

func (p *Poppler) Name() string { return string(types.BackendPoppler) }

// Available reports whether the pdftoppm binary can be found.
func (p *Poppler) Available() bool {
	_, err := p.exec.LookPath(p.bin)
	return err == nil
}

// Render runs pdftoppm once for the span selected by opts and returns the
// files it produced, sorted by page number.
func (p *Poppler) Render(ctx context.Context, pdfPath string, opts Options) ([]Page, error) {
	bin, err := p.exec.LookPath(p.bin)
	if err != nil {
		return nil, &Error{Tool: binPdftoppm, Err: fmt.Errorf("%s not found: install poppler-utils: %w", p.bin, err)}
	}

	args := popplerArgs(pdfPath, opts)
	p.logger.Debug("running pdftoppm", zap.String("bin", bin), zap.Strings("args", args))

	var stderr bytes.Buffer
	if err := p.exec.Run(ctx, bin, args, &stderr); err != nil {
		return nil, &Error{Tool: binPdftoppm, Err: err, Stderr: stderr.String()}
	}

	if opts.SinglePage() {
		path := filepath.Join(opts.OutDir, singleRoot(opts)+popplerExt(opts.Format))
		if _, err := os.Stat(path); err != nil {
			return nil, &Error{Tool: binPdftoppm, Err: fmt.Errorf("expected output %s: %w", path, err)}
		}
		return []Page{{Number: opts.FirstPage, Path: path}}, nil
	}

	pages, err := collectPages(opts.OutDir, prefixOrDefault(opts), popplerExt(opts.Format))
	if err != nil {
		return nil, &Error{Tool: binPdftoppm, Err: err}
	}
	if len(pages) == 0 {
		return nil, &Error{Tool: binPdftoppm, Err: errors.New("pdftoppm produced no images")}
	}
	return pages, nil
}

// popplerArgs builds the pdftoppm command line. An unset scale axis is
// passed as -1 so pdftoppm keeps the aspect ratio.
func popplerArgs(pdfPath string, opts Options) []string {
	args := make([]string, 0, 16)
	if opts.Format == types.FormatJPEG {
		args = append(args, "-jpeg")
		if opts.Quality > 0 {
			args = append(args, "-jpegopt", "quality="+strconv.Itoa(opts.Quality))
		}
	} else {
		args = append(args, "-png")
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	args = append(args, "-r", strconv.Itoa(dpi))

	if opts.FirstPage > 0 {
		args = append(args, "-f", strconv.Itoa(opts.FirstPage))
	}
	if opts.LastPage > 0 {
		args = append(args, "-l", strconv.Itoa(opts.LastPage))
	}

	if opts.Width > 0 || opts.Height > 0 {
		args = append(args,
			"-scale-to-x", scaleArg(opts.Width),
			"-scale-to-y", scaleArg(opts.Height),
		)
	}

	root := filepath.Join(opts.OutDir, prefixOrDefault(opts))
	if opts.SinglePage() {
		args = append(args, "-singlefile")
		root = filepath.Join(opts.OutDir, singleRoot(opts))
	}
	return append(args, pdfPath, root)
}

func scaleArg(n int) string {
	if n <= 0 {
		return "-1"
	}
	return strconv.Itoa(n)
}

func prefixOrDefault(opts Options) string {
	if opts.Prefix == "" {
		return defaultPrefix
	}
	return opts.Prefix
}

func singleRoot(opts Options) string {
	return prefixOrDefault(opts) + "-" + strconv.Itoa(opts.FirstPage)
}

// popplerExt is the extension pdftoppm gives its output files.
func popplerExt(f types.Format) string {
	if f == types.FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// collectPages finds files named <prefix>-<n><ext> in dir. pdftoppm pads n
// with zeros to the width of the document's page count.
func collectPages(dir, prefix, ext string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	var pages []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		rest, ok := strings.CutPrefix(name, prefix+"-")
		if !ok {
			continue
		}
		num, ok := strings.CutSuffix(rest, ext)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			continue
		}
		pages = append(pages, Page{Number: n, Path: filepath.Join(dir, name)})
	}

	slices.SortFunc(pages, func(a, b Page) int { return a.Number - b.Number })
	return pages, nil
}
