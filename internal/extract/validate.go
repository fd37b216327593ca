package extract

import (
	"errors"
	"fmt"

	"github.com/1911342723/jsonflat/internal/schema"
)

// ErrEmptySelection reports a generate request with no selected paths.
var ErrEmptySelection = errors.New("no fields selected")

// ValidateSelection checks a selection against a discovered field tree.
// Every address must be distinct and must name a selectable node; the
// first offending address is reported.
func ValidateSelection(fields []schema.FieldNode, paths []string) error {
	if len(paths) == 0 {
		return ErrEmptySelection
	}

	known := make(map[string]bool)
	selectable := make(map[string]bool)
	schema.Walk(fields, func(n schema.FieldNode) {
		known[n.Address] = true
		if n.Selectable {
			selectable[n.Address] = true
		}
	})

	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			return fmt.Errorf("duplicate path %q in selection", p)
		}
		seen[p] = true
		if !known[p] {
			return fmt.Errorf("unknown path %q", p)
		}
		if !selectable[p] {
			return fmt.Errorf("path %q is not selectable", p)
		}
	}
	return nil
}
