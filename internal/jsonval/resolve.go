package jsonval

import "strings"

// JoinAddress extends a dotted address by one key. The root address is the
// empty string, so joining onto it yields the bare key.
func JoinAddress(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Resolve walks a dotted address from v, one object member per segment.
// The empty address names v itself. Arrays are never entered: a segment
// that lands on anything but an object holding that key reports ok=false.
func Resolve(v Value, address string) (Value, bool) {
	if address == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(address, ".") {
		if cur.Type != ObjectType {
			return Value{}, false
		}
		next, ok := cur.Lookup(seg)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}
