// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package node implements the PDF-to-image workflow node: it reads each
// input item's parameters from the host, renders the PDF through a
// render.Renderer inside a scratch directory, and returns one output item
// per rendered page.
package node

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf2image/internal/convert"
	"github.com/pdiddy/pdf2image/internal/host"
	"github.com/pdiddy/pdf2image/internal/render"
	"github.com/pdiddy/pdf2image/internal/scratch"
	"github.com/pdiddy/pdf2image/pkg/types"
)

const inputFile = "input.pdf"

// ItemError wraps the error that aborted a run at item Index.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// BatchResult holds the outcome of a run.
type BatchResult struct {
	// Outputs has one slice per node output; this node has one.
	Outputs [][]types.Item

	Converted int
	Failed    int
	Pages     int
}

// Total returns the number of input items processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any item failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Node converts PDF items to page images.
type Node struct {
	renderer    render.Renderer
	adapter     *convert.Adapter
	logger      *zap.Logger
	scratchBase string
	newToken    func() string
}

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the logger for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(n *Node) { n.logger = l }
}

// WithScratchBase sets the parent directory for scratch directories.
func WithScratchBase(dir string) Option {
	return func(n *Node) { n.scratchBase = dir }
}

// WithTokenSource sets the function that names scratch directories.
func WithTokenSource(f func() string) Option {
	return func(n *Node) { n.newToken = f }
}

// New creates a node that renders with r.
func New(r render.Renderer, opts ...Option) *Node {
	n := &Node{
		renderer: r,
		logger:   zap.NewNop(),
		newToken: scratch.NewToken,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.adapter = convert.NewAdapter(r, n.logger)
	return n
}

// Description returns the node descriptor.
func (n *Node) Description() types.NodeDescription {
	return Description()
}

// Execute processes every input item and returns the node outputs.
func (n *Node) Execute(ctx context.Context, ec host.ExecutionContext) ([][]types.Item, error) {
	res, err := n.ExecuteBatch(ctx, ec, io.Discard)
	if err != nil {
		return nil, err
	}
	return res.Outputs, nil
}

// ExecuteBatch processes items one after another, printing a status line
// per item to w. When the host does not continue on failure, the first
// failing item aborts the run with an *ItemError and no outputs. Otherwise
// the failing item is replaced by a copy of its JSON with Error set.
func (n *Node) ExecuteBatch(ctx context.Context, ec host.ExecutionContext, w io.Writer) (BatchResult, error) {
	var result BatchResult
	var out []types.Item

	for i, item := range ec.InputItems() {
		label := itemLabel(item, i)

		items, err := n.processItem(ctx, ec, i)
		if err != nil {
			n.logger.Warn("item failed", zap.Int("item", i), zap.Error(err))
			fmt.Fprintf(w, "failed:    %s (%v)\n", label, err)
			if !ec.ContinueOnFail() {
				return BatchResult{}, &ItemError{Index: i, Err: err}
			}
			result.Failed++
			out = append(out, types.Item{JSON: item.CloneJSON(), Error: err.Error()})
			continue
		}

		result.Converted++
		result.Pages += len(items)
		fmt.Fprintf(w, "converted: %s (%d pages)\n", label, len(items))
		out = append(out, items...)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed, %d pages (total: %d)\n",
		result.Converted, result.Failed, result.Pages, result.Total())

	result.Outputs = [][]types.Item{out}
	return result, nil
}

// processItem converts item i. The scratch directory exists only for the
// duration of this call.
func (n *Node) processItem(ctx context.Context, ec host.ExecutionContext, i int) ([]types.Item, error) {
	op, err := stringParam(ec, ParamOperation, i, OperationConvert)
	if err != nil {
		return nil, err
	}
	if op != OperationConvert {
		return nil, &UnknownOperationError{Operation: op}
	}

	req, err := request(ec, i)
	if err != nil {
		return nil, err
	}

	dir, err := scratch.Acquire(n.scratchBase, n.newToken(), n.logger)
	if err != nil {
		return nil, err
	}
	defer dir.Release()

	pdfPath := dir.Join(inputFile)
	if err := os.WriteFile(pdfPath, req.SourceBytes, 0o600); err != nil {
		return nil, fmt.Errorf("writing scratch PDF: %w", err)
	}

	pages, err := n.adapter.Render(ctx, req, pdfPath, dir.Path())
	if err != nil {
		return nil, err
	}

	n.logger.Info("converted item",
		zap.Int("item", i),
		zap.String("renderer", n.renderer.Name()),
		zap.String("format", string(req.Format)),
		zap.Int("pages", len(pages)),
	)
	return convert.Assemble(pages, ec.InputItems()[i], req.OutputFieldName, req.Format), nil
}

func itemLabel(item types.Item, i int) string {
	if src, ok := item.JSON["source"].(string); ok && src != "" {
		return src
	}
	return fmt.Sprintf("item %d", i)
}
