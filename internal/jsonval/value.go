// Package jsonval models JSON documents as ordered trees, keeping object
// member order and number literals exactly as written in the source text.
package jsonval

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Type discriminates the JSON value categories a Value can hold.
type Type int

const (
	InvalidType Type = iota // zero Value, e.g. a failed lookup
	NullType
	BoolType
	NumberType
	StringType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ObjectType:
		return "object"
	case ArrayType:
		return "array"
	default:
		return "invalid"
	}
}

// Value is a single decoded JSON value. The payload field that applies is
// determined by Type; the others stay zero.
type Value struct {
	Type    Type
	Bool    bool
	Number  json.Number // source literal, "1" and "1.0" stay distinct
	String  string
	Members []Member // object entries in source order
	Items   []Value  // array elements
}

// Member is one object entry. The order of Members mirrors the source text.
type Member struct {
	Key   string
	Value Value
}

// Lookup returns the member value stored under key.
func (v Value) Lookup(key string) (Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// JSON renders v as compact JSON text. Object members keep their decoded
// order and numbers keep their source literal.
func (v Value) JSON() string {
	var sb strings.Builder
	v.appendJSON(&sb)
	return sb.String()
}

func (v Value) appendJSON(sb *strings.Builder) {
	switch v.Type {
	case BoolType:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case NumberType:
		sb.WriteString(v.Number.String())
	case StringType:
		sb.Write(encodeString(v.String))
	case ObjectType:
		sb.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.Write(encodeString(m.Key))
			sb.WriteByte(':')
			m.Value.appendJSON(sb)
		}
		sb.WriteByte('}')
	case ArrayType:
		sb.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.appendJSON(sb)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString("null")
	}
}

// encodeString renders s as a JSON string literal without HTML escaping,
// so "<" and "&" survive into cell output unchanged.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return []byte(`""`)
	}
	// Encode appends a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
