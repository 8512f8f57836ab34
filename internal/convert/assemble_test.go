// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2image/pkg/types"
)

func TestAssemble(t *testing.T) {
	base := types.Item{
		JSON: map[string]any{"invoice": 42, "pageNumber": "stale"},
		Binary: map[string]types.BinaryData{
			"data": {Data: "JVBERg==", MimeType: "application/pdf"},
		},
	}
	pages := []types.RenderedPage{
		{PageNumber: 1, TotalPages: 2, ImageBytes: []byte("one"), FileName: "page_1.jpeg", MimeType: "image/jpeg"},
		{PageNumber: 2, TotalPages: 2, ImageBytes: []byte("two"), FileName: "page_2.jpeg", MimeType: "image/jpeg"},
	}

	items := Assemble(pages, base, "image", types.FormatJPEG)
	require.Len(t, items, 2)

	for i, it := range items {
		p := pages[i]
		assert.Equal(t, 42, it.JSON["invoice"])
		assert.Equal(t, p.PageNumber, it.JSON["pageNumber"])
		assert.Equal(t, 2, it.JSON["totalPages"])
		assert.Equal(t, p.FileName, it.JSON["fileName"])
		assert.Empty(t, it.Error)

		require.Contains(t, it.Binary, "image")
		assert.NotContains(t, it.Binary, "data", "input attachments are not carried over")
		bin := it.Binary["image"]
		assert.Equal(t, "image/jpeg", bin.MimeType)
		assert.Equal(t, "jpeg", bin.FileExtension)
		assert.Equal(t, p.FileName, bin.FileName)

		decoded, err := base64.StdEncoding.DecodeString(bin.Data)
		require.NoError(t, err)
		assert.Equal(t, p.ImageBytes, decoded)
	}

	assert.Equal(t, "stale", base.JSON["pageNumber"], "input JSON must not be modified")
	_, hasTotal := base.JSON["totalPages"]
	assert.False(t, hasTotal)
}

func TestAssemble_NilJSON(t *testing.T) {
	pages := []types.RenderedPage{{PageNumber: 1, TotalPages: 1, ImageBytes: []byte("x"), FileName: "page_1.png", MimeType: "image/png"}}

	items := Assemble(pages, types.Item{}, "out", types.FormatPNG)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].JSON["pageNumber"])
	assert.Contains(t, items[0].Binary, "out")
}

func TestAssemble_Empty(t *testing.T) {
	assert.Empty(t, Assemble(nil, types.Item{}, "image", types.FormatPNG))
}
