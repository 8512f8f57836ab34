// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package host defines the execution context a workflow host hands to the
// node, and a static implementation used by the CLI and tests.
package host

import (
	"encoding/base64"
	"fmt"
	"maps"

	"github.com/pdiddy/pdf2image/pkg/types"
)

// ExecutionContext is what the node needs from its host: the input items,
// per-item parameter values, access to binary attachments, and the
// continue-on-fail setting.
type ExecutionContext interface {
	// InputItems returns the items to process, in order.
	InputItems() []types.Item

	// NodeParameter returns the value of parameter name for item
	// itemIndex, or fallback when the parameter is not set.
	NodeParameter(name string, itemIndex int, fallback any) (any, error)

	// BinaryDataBuffer returns the decoded bytes of the named binary
	// attachment. A missing attachment is a *MissingBinaryDataError.
	BinaryDataBuffer(itemIndex int, property string) ([]byte, error)

	// ContinueOnFail reports whether item failures are recorded as error
	// items instead of aborting the run.
	ContinueOnFail() bool
}

// MissingBinaryDataError reports an item without the requested binary
// attachment.
type MissingBinaryDataError struct {
	Index    int
	Property string
}

func (e *MissingBinaryDataError) Error() string {
	return fmt.Sprintf("item %d has no binary property %q", e.Index, e.Property)
}

// Static is an in-memory ExecutionContext. Parameters apply to every item;
// ItemParameters override them per item index.
type Static struct {
	Items          []types.Item
	Parameters     map[string]any
	ItemParameters map[int]map[string]any
	FailSoft       bool
}

// NewStatic creates a Static host over items with node-level parameters.
func NewStatic(items []types.Item, params map[string]any, continueOnFail bool) *Static {
	return &Static{
		Items:      items,
		Parameters: maps.Clone(params),
		FailSoft:   continueOnFail,
	}
}

// SetItemParameter overrides one parameter for a single item.
func (s *Static) SetItemParameter(itemIndex int, name string, value any) {
	if s.ItemParameters == nil {
		s.ItemParameters = make(map[int]map[string]any)
	}
	if s.ItemParameters[itemIndex] == nil {
		s.ItemParameters[itemIndex] = make(map[string]any)
	}
	s.ItemParameters[itemIndex][name] = value
}

func (s *Static) InputItems() []types.Item { return s.Items }

func (s *Static) NodeParameter(name string, itemIndex int, fallback any) (any, error) {
	if itemIndex < 0 || itemIndex >= len(s.Items) {
		return nil, fmt.Errorf("item index %d out of range (%d items)", itemIndex, len(s.Items))
	}
	if v, ok := s.ItemParameters[itemIndex][name]; ok {
		return v, nil
	}
	if v, ok := s.Parameters[name]; ok {
		return v, nil
	}
	return fallback, nil
}

func (s *Static) BinaryDataBuffer(itemIndex int, property string) ([]byte, error) {
	if itemIndex < 0 || itemIndex >= len(s.Items) {
		return nil, fmt.Errorf("item index %d out of range (%d items)", itemIndex, len(s.Items))
	}
	bin, ok := s.Items[itemIndex].Binary[property]
	if !ok {
		return nil, &MissingBinaryDataError{Index: itemIndex, Property: property}
	}
	data, err := base64.StdEncoding.DecodeString(bin.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding binary property %q of item %d: %w", property, itemIndex, err)
	}
	return data, nil
}

func (s *Static) ContinueOnFail() bool { return s.FailSoft }
