// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/base64"

	"github.com/pdiddy/pdf2image/pkg/types"
)

// Assemble builds one output item per rendered page, in page order. Each
// item copies the JSON fields of base, sets pageNumber, totalPages and
// fileName, and stores the image base64-encoded under outputField.
func Assemble(pages []types.RenderedPage, base types.Item, outputField string, format types.Format) []types.Item {
	items := make([]types.Item, 0, len(pages))
	for _, p := range pages {
		fields := base.CloneJSON()
		fields["pageNumber"] = p.PageNumber
		fields["totalPages"] = p.TotalPages
		fields["fileName"] = p.FileName

		items = append(items, types.Item{
			JSON: fields,
			Binary: map[string]types.BinaryData{
				outputField: {
					Data:          base64.StdEncoding.EncodeToString(p.ImageBytes),
					MimeType:      p.MimeType,
					FileName:      p.FileName,
					FileExtension: format.Extension(),
				},
			},
		})
	}
	return items
}
