// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2image/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	runFunc       func(name string, args []string, stderr io.Writer) error
	calls         [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, stderr io.Writer) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(name, args, stderr)
	}
	return nil
}

// writeOutputs returns a runFunc that creates the named files in dir, the
// way pdftoppm would.
func writeOutputs(t *testing.T, dir string, names ...string) func(string, []string, io.Writer) error {
	t.Helper()
	return func(string, []string, io.Writer) error {
		for _, n := range names {
			if err := os.WriteFile(filepath.Join(dir, n), []byte("img "+n), 0o644); err != nil {
				return err
			}
		}
		return nil
	}
}

func newTestPoppler(m *mockExecutor) *Poppler {
	p := NewPoppler("", nil)
	p.exec = m
	return p
}

func TestPopplerArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "defaults render whole document as png",
			opts: Options{Format: types.FormatPNG, DPI: 150, OutDir: "/s", Prefix: "page"},
			want: "-png -r 150 in.pdf /s/page",
		},
		{
			name: "jpeg carries quality",
			opts: Options{Format: types.FormatJPEG, DPI: 300, Quality: 70, OutDir: "/s", Prefix: "page"},
			want: "-jpeg -jpegopt quality=70 -r 300 in.pdf /s/page",
		},
		{
			name: "png ignores quality",
			opts: Options{Format: types.FormatPNG, DPI: 72, Quality: 70, OutDir: "/s", Prefix: "page"},
			want: "-png -r 72 in.pdf /s/page",
		},
		{
			name: "single page uses singlefile root",
			opts: Options{Format: types.FormatPNG, DPI: 150, FirstPage: 3, LastPage: 3, OutDir: "/s", Prefix: "page"},
			want: "-png -r 150 -f 3 -l 3 -singlefile in.pdf /s/page-3",
		},
		{
			name: "width only keeps aspect",
			opts: Options{Format: types.FormatPNG, DPI: 150, Width: 800, OutDir: "/s", Prefix: "page"},
			want: "-png -r 150 -scale-to-x 800 -scale-to-y -1 in.pdf /s/page",
		},
		{
			name: "height only keeps aspect",
			opts: Options{Format: types.FormatPNG, DPI: 150, Height: 600, OutDir: "/s", Prefix: "page"},
			want: "-png -r 150 -scale-to-x -1 -scale-to-y 600 in.pdf /s/page",
		},
		{
			name: "both axes",
			opts: Options{Format: types.FormatPNG, DPI: 150, Width: 800, Height: 600, OutDir: "/s", Prefix: "page"},
			want: "-png -r 150 -scale-to-x 800 -scale-to-y 600 in.pdf /s/page",
		},
		{
			name: "zero dpi and empty prefix fall back to defaults",
			opts: Options{Format: types.FormatPNG, OutDir: "/s"},
			want: "-png -r 150 in.pdf /s/page",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(popplerArgs("in.pdf", tt.opts), " ")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPopplerRender_AllPages(t *testing.T) {
	dir := t.TempDir()
	m := &mockExecutor{
		availableBins: map[string]bool{"pdftoppm": true},
		runFunc:       writeOutputs(t, dir, "page-10.png", "page-02.png", "page-01.png", "other.png", "page-03.jpg"),
	}
	p := newTestPoppler(m)

	opts := DefaultOptions()
	opts.OutDir = dir
	pages, err := p.Render(context.Background(), filepath.Join(dir, "input.pdf"), opts)
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{pages[0].Number, pages[1].Number, pages[2].Number})
	assert.Equal(t, filepath.Join(dir, "page-01.png"), pages[0].Path)

	require.Len(t, m.calls, 1)
	assert.Equal(t, "/usr/bin/pdftoppm", m.calls[0][0])
}

func TestPopplerRender_SinglePageJPEG(t *testing.T) {
	dir := t.TempDir()
	m := &mockExecutor{
		availableBins: map[string]bool{"pdftoppm": true},
		runFunc:       writeOutputs(t, dir, "page-4.jpg"),
	}
	p := newTestPoppler(m)

	opts := DefaultOptions()
	opts.Format = types.FormatJPEG
	opts.OutDir = dir
	opts.FirstPage, opts.LastPage = 4, 4

	pages, err := p.Render(context.Background(), "input.pdf", opts)
	require.NoError(t, err)
	require.Equal(t, []Page{{Number: 4, Path: filepath.Join(dir, "page-4.jpg")}}, pages)
}

func TestPopplerRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		exec    *mockExecutor
		opts    func(dir string) Options
		wantMsg string
	}{
		{
			name: "binary missing",
			exec: &mockExecutor{},
			opts: func(dir string) Options {
				o := DefaultOptions()
				o.OutDir = dir
				return o
			},
			wantMsg: "pdftoppm not found",
		},
		{
			name: "stderr is passed through verbatim",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdftoppm": true},
				runFunc: func(_ string, _ []string, stderr io.Writer) error {
					_, _ = io.WriteString(stderr, "Syntax Error: Couldn't find trailer dictionary\n")
					return errors.New("exit status 1")
				},
			},
			opts: func(dir string) Options {
				o := DefaultOptions()
				o.OutDir = dir
				return o
			},
			wantMsg: "Syntax Error: Couldn't find trailer dictionary",
		},
		{
			name: "exit error without stderr",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdftoppm": true},
				runFunc: func(string, []string, io.Writer) error {
					return errors.New("exit status 99")
				},
			},
			opts: func(dir string) Options {
				o := DefaultOptions()
				o.OutDir = dir
				return o
			},
			wantMsg: "exit status 99",
		},
		{
			name: "no images produced",
			exec: &mockExecutor{availableBins: map[string]bool{"pdftoppm": true}},
			opts: func(dir string) Options {
				o := DefaultOptions()
				o.OutDir = dir
				return o
			},
			wantMsg: "produced no images",
		},
		{
			name: "single page output missing",
			exec: &mockExecutor{availableBins: map[string]bool{"pdftoppm": true}},
			opts: func(dir string) Options {
				o := DefaultOptions()
				o.OutDir = dir
				o.FirstPage, o.LastPage = 2, 2
				return o
			},
			wantMsg: "expected output",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			p := newTestPoppler(tt.exec)

			pages, err := p.Render(context.Background(), "input.pdf", tt.opts(dir))
			require.Error(t, err)
			assert.Nil(t, pages)

			var renderErr *Error
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, "pdftoppm", renderErr.Tool)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPopplerAvailable(t *testing.T) {
	assert.True(t, newTestPoppler(&mockExecutor{availableBins: map[string]bool{"pdftoppm": true}}).Available())
	assert.False(t, newTestPoppler(&mockExecutor{}).Available())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.RendererConfig
		wantName string
		wantErr  bool
	}{
		{name: "empty selects poppler", cfg: types.RendererConfig{}, wantName: "poppler"},
		{name: "poppler", cfg: types.RendererConfig{Backend: types.BackendPoppler}, wantName: "poppler"},
		{name: "fitz", cfg: types.RendererConfig{Backend: types.BackendFitz}, wantName: "fitz"},
		{name: "unknown", cfg: types.RendererConfig{Backend: "ghostscript"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.cfg, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown renderer backend")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, r.Name())
		})
	}
}

func TestNewPoppler_CustomBinary(t *testing.T) {
	m := &mockExecutor{availableBins: map[string]bool{"/opt/poppler/bin/pdftoppm": true}}
	p := NewPoppler("/opt/poppler/bin/pdftoppm", nil)
	p.exec = m
	assert.True(t, p.Available())
}
