package flatten

import (
	"strings"

	"github.com/1911342723/jsonflat/internal/jsonval"
)

// Row is one produced record. Values maps selected addresses to the values
// that resolved for this row; addresses that resolved absent are simply
// missing. Index is the row's 1-based position within its source array, or
// 0 when no array expansion occurred.
type Row struct {
	Index  int
	Values map[string]jsonval.Value
}

// Expand produces the row records for a selection. With no pivot, an array
// root yields one row per element and anything else yields a single row
// resolved from the root. With a pivot, the walk descends from the root
// toward the pivot address, iterating every intermediate array of objects
// on the way (cross-expansion) and emitting one row per pivot element.
// Branches where a key is missing or a value has the wrong shape are
// dropped silently.
func Expand(root jsonval.Value, pivot *Pivot, paths []string) []Row {
	if pivot == nil {
		if root.Type == jsonval.ArrayType {
			return expandRootArray(root, paths)
		}
		return []Row{singleRow(root, paths)}
	}

	e := &expander{pivot: pivot.Address, paths: paths}

	// Ancestor values live outside the pivot subtree and broadcast to every
	// row. Paths behind an intermediate array resolve absent here and are
	// re-captured per element during the descent.
	ancestor := make(map[string]jsonval.Value)
	for _, p := range paths {
		if _, under := addressSuffix(p, e.pivot); under {
			continue
		}
		if v, ok := jsonval.Resolve(root, p); ok {
			ancestor[p] = v
		}
	}

	e.descend(root, "", ancestor)
	return e.rows
}

func expandRootArray(root jsonval.Value, paths []string) []Row {
	rows := make([]Row, 0, len(root.Items))
	for i, elem := range root.Items {
		row := Row{Index: i + 1, Values: make(map[string]jsonval.Value)}
		for _, p := range paths {
			if v, ok := jsonval.Resolve(elem, p); ok {
				row.Values[p] = v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func singleRow(root jsonval.Value, paths []string) Row {
	row := Row{Values: make(map[string]jsonval.Value)}
	for _, p := range paths {
		if v, ok := jsonval.Resolve(root, p); ok {
			row.Values[p] = v
		}
	}
	return row
}

type expander struct {
	pivot string
	paths []string
	rows  []Row
}

func (e *expander) descend(v jsonval.Value, addr string, ancestor map[string]jsonval.Value) {
	if v.Type == jsonval.ArrayType {
		if addr == e.pivot {
			e.emit(v, ancestor)
			return
		}
		// Intermediate array: one branch per element, each with a fresh
		// ancestor row extended by the values rooted here.
		for _, elem := range v.Items {
			branch := copyValues(ancestor)
			e.capture(elem, addr, branch)
			e.descend(elem, addr, branch)
		}
		return
	}
	if addr == e.pivot {
		// The pivot address holds no array in this branch.
		return
	}
	seg := nextSegment(e.pivot, addr)
	child, ok := v.Lookup(seg)
	if !ok {
		return
	}
	e.descend(child, jsonval.JoinAddress(addr, seg), ancestor)
}

// emit writes one row per element of the pivot array, merging the ancestor
// row with the element's own values.
func (e *expander) emit(arr jsonval.Value, ancestor map[string]jsonval.Value) {
	for i, elem := range arr.Items {
		row := Row{Index: i + 1, Values: copyValues(ancestor)}
		for _, p := range e.paths {
			suffix, under := addressSuffix(p, e.pivot)
			if !under {
				continue
			}
			if v, ok := jsonval.Resolve(elem, suffix); ok {
				row.Values[p] = v
			}
		}
		e.rows = append(e.rows, row)
	}
}

// capture copies into branch the values of selected paths rooted at addr
// that do not continue under the pivot.
func (e *expander) capture(elem jsonval.Value, addr string, branch map[string]jsonval.Value) {
	for _, p := range e.paths {
		if _, under := addressSuffix(p, e.pivot); under {
			continue
		}
		suffix, ok := addressSuffix(p, addr)
		if !ok {
			continue
		}
		if v, found := jsonval.Resolve(elem, suffix); found {
			branch[p] = v
		}
	}
}

// nextSegment returns the pivot segment immediately after addr, where addr
// is a strict prefix of the pivot address.
func nextSegment(pivot, addr string) string {
	rest := pivot
	if addr != "" {
		rest = pivot[len(addr)+1:]
	}
	if i := strings.Index(rest, "."); i >= 0 {
		return rest[:i]
	}
	return rest
}

func copyValues(src map[string]jsonval.Value) map[string]jsonval.Value {
	dst := make(map[string]jsonval.Value, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
