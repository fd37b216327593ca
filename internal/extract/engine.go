// Package extract wires the extraction pipeline end to end: parse the
// document, discover its fields, validate the selection, locate the pivot,
// expand rows and materialize the table.
package extract

import (
	"errors"
	"fmt"

	"github.com/1911342723/jsonflat/internal/flatten"
	"github.com/1911342723/jsonflat/internal/jsonval"
	"github.com/1911342723/jsonflat/internal/schema"
	"github.com/1911342723/jsonflat/internal/table"
)

// ErrNoRows reports a valid selection that produced no usable rows: the
// pivot array was empty, or nothing resolved anywhere.
var ErrNoRows = errors.New("selection produced no rows")

// Engine runs the extraction pipeline. It holds only limits, keeps no state
// between invocations, and is safe for concurrent use.
type Engine struct {
	maxDepth int
}

// New returns an Engine enforcing the given nesting depth limit on parsed
// documents; 0 applies jsonval.DefaultMaxDepth.
func New(maxDepth int) *Engine {
	return &Engine{maxDepth: maxDepth}
}

// Parse decodes a JSON document buffer.
func (e *Engine) Parse(data []byte) (jsonval.Value, error) {
	v, err := jsonval.Decode(data, e.maxDepth)
	if err != nil {
		return jsonval.Value{}, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

// DiscoverSchema parses a document and returns its field tree.
func (e *Engine) DiscoverSchema(data []byte) ([]schema.FieldNode, error) {
	root, err := e.Parse(data)
	if err != nil {
		return nil, err
	}
	return schema.Discover(root), nil
}

// Extract parses a document and materializes the table for a selection.
// A valid selection that yields no rows returns the header-only table
// together with ErrNoRows, so callers surface a warning instead of a
// silent empty grid.
func (e *Engine) Extract(data []byte, paths []string) (*table.Table, error) {
	root, err := e.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateSelection(schema.Discover(root), paths); err != nil {
		return nil, err
	}

	rows := flatten.Expand(root, flatten.Locate(root, paths), paths)
	tbl := table.Materialize(rows, paths)
	if emptyResult(rows) {
		return tbl, ErrNoRows
	}
	return tbl, nil
}

// emptyResult reports zero rows, or rows in which nothing resolved at all.
func emptyResult(rows []flatten.Row) bool {
	for _, r := range rows {
		if len(r.Values) > 0 {
			return false
		}
	}
	return true
}
