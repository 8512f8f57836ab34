// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package host

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2image/pkg/types"
)

// Manifest is the on-disk description of a batch: node parameters, the
// continue-on-fail setting, and the input items.
type Manifest struct {
	ContinueOnFail *bool          `yaml:"continue_on_fail,omitempty"`
	Parameters     map[string]any `yaml:"parameters,omitempty"`
	Items          []ManifestItem `yaml:"items"`
}

// ManifestItem is one input item. Per-item Parameters override the
// manifest-level ones.
type ManifestItem struct {
	JSON       map[string]any            `yaml:"json,omitempty"`
	Binary     map[string]ManifestBinary `yaml:"binary,omitempty"`
	Parameters map[string]any            `yaml:"parameters,omitempty"`
}

// ManifestBinary is an attachment given either inline as base64 Data or
// as a Path to read. Relative paths resolve against the manifest directory.
type ManifestBinary struct {
	Path     string `yaml:"path,omitempty"`
	Data     string `yaml:"data,omitempty"`
	MimeType string `yaml:"mime_type,omitempty"`
	FileName string `yaml:"file_name,omitempty"`
}

// LoadManifest reads a YAML manifest and builds a Static host from it.
// defaults supply parameters the manifest does not set; continueOnFail is
// used unless the manifest sets continue_on_fail itself.
//
// An attachment whose file does not exist is left off the item so the
// failure is reported for that item alone.
func LoadManifest(path string, defaults map[string]any, continueOnFail bool) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	params := make(map[string]any, len(defaults)+len(m.Parameters))
	for k, v := range defaults {
		params[k] = v
	}
	for k, v := range m.Parameters {
		params[k] = v
	}
	if m.ContinueOnFail != nil {
		continueOnFail = *m.ContinueOnFail
	}

	baseDir := filepath.Dir(path)
	items := make([]types.Item, 0, len(m.Items))
	s := NewStatic(nil, params, continueOnFail)

	for i, mi := range m.Items {
		item := types.Item{JSON: mi.JSON, Binary: make(map[string]types.BinaryData, len(mi.Binary))}
		if item.JSON == nil {
			item.JSON = map[string]any{}
		}
		for prop, mb := range mi.Binary {
			bin, ok, err := mb.resolve(baseDir)
			if err != nil {
				return nil, fmt.Errorf("item %d binary %q: %w", i, prop, err)
			}
			if ok {
				item.Binary[prop] = bin
			}
		}
		items = append(items, item)
		for k, v := range mi.Parameters {
			s.SetItemParameter(i, k, v)
		}
	}

	s.Items = items
	return s, nil
}

func (mb ManifestBinary) resolve(baseDir string) (types.BinaryData, bool, error) {
	if mb.Path == "" {
		return types.BinaryData{
			Data:          mb.Data,
			MimeType:      mb.MimeType,
			FileName:      mb.FileName,
			FileExtension: extOf(mb.FileName),
		}, true, nil
	}

	p := mb.Path
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	bin, err := readBinary(p)
	if errors.Is(err, fs.ErrNotExist) {
		return types.BinaryData{}, false, nil
	}
	if err != nil {
		return types.BinaryData{}, false, err
	}
	if mb.MimeType != "" {
		bin.MimeType = mb.MimeType
	}
	if mb.FileName != "" {
		bin.FileName = mb.FileName
		bin.FileExtension = extOf(mb.FileName)
	}
	return bin, true, nil
}

// FromFiles builds a Static host with one item per path. Each item gets
// json {"source": path} and the file under property. Missing files produce
// items without the attachment.
func FromFiles(paths []string, property string, params map[string]any, continueOnFail bool) (*Static, error) {
	items := make([]types.Item, 0, len(paths))
	for _, p := range paths {
		item := types.Item{
			JSON:   map[string]any{"source": p},
			Binary: map[string]types.BinaryData{},
		}
		bin, err := readBinary(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			item.Binary[property] = bin
		}
		items = append(items, item)
	}
	return NewStatic(items, params, continueOnFail), nil
}

func readBinary(path string) (types.BinaryData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BinaryData{}, fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	return types.BinaryData{
		Data:          base64.StdEncoding.EncodeToString(data),
		MimeType:      mimeType,
		FileName:      name,
		FileExtension: extOf(name),
	}, nil
}

func extOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return ext[1:]
}
