package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxDepth bounds container nesting when no explicit limit is given.
const DefaultMaxDepth = 100

// ErrTooDeep reports input whose container nesting exceeds the limit.
var ErrTooDeep = errors.New("maximum nesting depth exceeded")

// Decode parses a single JSON document into a Value, preserving object
// member order and number literals. maxDepth bounds container nesting;
// values <= 0 fall back to DefaultMaxDepth. Anything after the first
// top-level value is an error.
func Decode(data []byte, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, maxDepth)
	if err != nil {
		if err == io.EOF {
			return Value{}, errors.New("empty input")
		}
		return Value{}, err
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, fmt.Errorf("trailing data after top-level value: %w", err)
		}
		return Value{}, fmt.Errorf("trailing data after top-level value: %v", tok)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, depth)
		case '[':
			return decodeArray(dec, depth)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case nil:
		return Value{Type: NullType}, nil
	case bool:
		return Value{Type: BoolType, Bool: t}, nil
	case json.Number:
		return Value{Type: NumberType, Number: t}, nil
	case string:
		return Value{Type: StringType, String: t}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	if depth <= 0 {
		return Value{}, ErrTooDeep
	}
	obj := Value{Type: ObjectType}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", tok)
		}
		val, err := decodeValue(dec, depth-1)
		if err != nil {
			return Value{}, err
		}
		obj.setMember(key, val)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	if depth <= 0 {
		return Value{}, ErrTooDeep
	}
	arr := Value{Type: ArrayType}
	for dec.More() {
		item, err := decodeValue(dec, depth-1)
		if err != nil {
			return Value{}, err
		}
		arr.Items = append(arr.Items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}

// setMember appends a new member, or replaces the value in place when the
// key repeats. A repeated key keeps its first position and its last value.
func (v *Value) setMember(key string, val Value) {
	for i := range v.Members {
		if v.Members[i].Key == key {
			v.Members[i].Value = val
			return
		}
	}
	v.Members = append(v.Members, Member{Key: key, Value: val})
}
