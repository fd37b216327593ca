// Package flatten turns a decoded JSON document into flat row records: it
// picks the array that drives expansion and produces one row per element,
// broadcasting out-of-array fields to every row.
package flatten

import (
	"strings"

	"github.com/1911342723/jsonflat/internal/jsonval"
)

// Pivot identifies the array of objects that drives row expansion.
type Pivot struct {
	Address string
	Array   jsonval.Value
}

// Locate finds the deepest array of objects lying on any selected path.
// The walk descends arrays through their first element, matching how field
// discovery judges array shape. Equal depth keeps the first occurrence
// encountered, so the outcome is deterministic for a fixed selection order.
// Arrays of primitives are never candidates. Returns nil when no selected
// path passes through an array of objects.
func Locate(root jsonval.Value, paths []string) *Pivot {
	var best *Pivot
	bestDepth := -1
	for _, p := range paths {
		locateOnPath(root, "", p, func(addr string, arr jsonval.Value) {
			if d := addressDepth(addr); d > bestDepth {
				best = &Pivot{Address: addr, Array: arr}
				bestDepth = d
			}
		})
	}
	return best
}

func locateOnPath(v jsonval.Value, addr, remaining string, emit func(string, jsonval.Value)) {
	for {
		for v.Type == jsonval.ArrayType {
			if len(v.Items) == 0 {
				return
			}
			if v.Items[0].Type == jsonval.ObjectType {
				emit(addr, v)
			}
			v = v.Items[0]
		}
		if remaining == "" {
			return
		}
		seg := remaining
		if i := strings.Index(remaining, "."); i >= 0 {
			seg, remaining = remaining[:i], remaining[i+1:]
		} else {
			remaining = ""
		}
		child, ok := v.Lookup(seg)
		if !ok {
			return
		}
		v = child
		addr = jsonval.JoinAddress(addr, seg)
	}
}

// addressDepth counts the segments of a dotted address; the root is 0.
func addressDepth(addr string) int {
	if addr == "" {
		return 0
	}
	return strings.Count(addr, ".") + 1
}

// addressSuffix returns the remainder of path under base. The empty base is
// the root, which every path is under.
func addressSuffix(path, base string) (string, bool) {
	if base == "" {
		return path, true
	}
	if path == base {
		return "", true
	}
	if strings.HasPrefix(path, base+".") {
		return path[len(base)+1:], true
	}
	return "", false
}
