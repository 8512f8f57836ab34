// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2image/pkg/types"
)

func TestWriteImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	items := []types.Item{
		{
			JSON: map[string]any{"source": "docs/report.pdf", "pageNumber": 1},
			Binary: map[string]types.BinaryData{
				"image": {Data: base64.StdEncoding.EncodeToString([]byte("one")), FileName: "page_1.png"},
			},
		},
		{
			JSON:  map[string]any{"id": 2},
			Error: "item 1 has no binary property \"data\"",
		},
		{
			JSON: map[string]any{},
			Binary: map[string]types.BinaryData{
				"thumb": {Data: base64.StdEncoding.EncodeToString([]byte("three"))},
			},
		},
	}

	n, err := writeImages(dir, items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(dir, "report_page_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "output-3_thumb"))
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}

func TestWriteImages_SameStemDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	page := func(src, content string) types.Item {
		return types.Item{
			JSON: map[string]any{"source": src},
			Binary: map[string]types.BinaryData{
				"image": {Data: base64.StdEncoding.EncodeToString([]byte(content)), FileName: "page_1.png"},
			},
		}
	}
	items := []types.Item{page("a/x.pdf", "from a"), page("b/x.pdf", "from b")}

	n, err := writeImages(dir, items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(dir, "x_page_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "from a", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "x-2_page_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "from b", string(data))
}

func TestWriteImages_BadData(t *testing.T) {
	items := []types.Item{{Binary: map[string]types.BinaryData{"image": {Data: "%%%"}}}}
	_, err := writeImages(t.TempDir(), items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding image of output 0")
}

func TestWriteDescription(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDescription(&buf, "json"))

	var desc types.NodeDescription
	require.NoError(t, json.Unmarshal(buf.Bytes(), &desc))
	assert.Equal(t, "pdf2Image", desc.Name)
	assert.Len(t, desc.Properties, 10)

	buf.Reset()
	require.NoError(t, writeDescription(&buf, "yaml"))
	var fromYAML types.NodeDescription
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "PDF to Image", fromYAML.DisplayName)

	require.Error(t, writeDescription(&buf, "xml"))
}
