// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "maps"

// BinaryData is a binary attachment on an Item. Data holds the base64
// encoded payload.
type BinaryData struct {
	Data          string `json:"data" yaml:"data"`
	MimeType      string `json:"mimeType,omitempty" yaml:"mime_type,omitempty"`
	FileName      string `json:"fileName,omitempty" yaml:"file_name,omitempty"`
	FileExtension string `json:"fileExtension,omitempty" yaml:"file_extension,omitempty"`
}

// Item is the host's record envelope. Input items carry JSON fields and
// binary attachments; output items produced in continue-on-fail mode carry
// Error instead of attachments.
type Item struct {
	JSON   map[string]any        `json:"json" yaml:"json"`
	Binary map[string]BinaryData `json:"binary,omitempty" yaml:"binary,omitempty"`
	Error  string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// CloneJSON returns a shallow copy of the item's JSON fields. The result is
// never nil.
func (it Item) CloneJSON() map[string]any {
	out := make(map[string]any, len(it.JSON)+3)
	maps.Copy(out, it.JSON)
	return out
}
