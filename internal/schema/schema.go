package schema

import (
	"github.com/1911342723/jsonflat/internal/jsonval"
)

// RootKey is the display key for a node standing in for the document root.
const RootKey = "$"

// Kind classifies the JSON shape behind a field.
type Kind string

const (
	Leaf           Kind = "leaf"            // scalar value, including null
	Object         Kind = "object"          // nested object, fields listed as children
	ObjectArray    Kind = "object_array"    // array whose first element is an object
	PrimitiveArray Kind = "primitive_array" // array of scalars or nested arrays
	EmptyArray     Kind = "empty_array"     // array with no elements
)

// FieldNode is one entry in the discovered field tree. Address is the dotted
// path from the document root; the root itself has the empty address. Only
// Leaf, PrimitiveArray and EmptyArray nodes are selectable.
type FieldNode struct {
	Address    string      `json:"address"`
	Key        string      `json:"key"`
	Kind       Kind        `json:"kind"`
	Selectable bool        `json:"selectable"`
	Children   []FieldNode `json:"children,omitempty"`
}

// Discover builds the field tree for a decoded document. Object members are
// listed in source order. Array shape is judged from the first element only:
// later elements with a different shape stay invisible. A non-object root
// yields a single node addressed by the empty string.
func Discover(root jsonval.Value) []FieldNode {
	if root.Type == jsonval.ObjectType {
		return childNodes(root, "")
	}
	return []FieldNode{classify(RootKey, "", root)}
}

func childNodes(obj jsonval.Value, prefix string) []FieldNode {
	if len(obj.Members) == 0 {
		return nil
	}
	nodes := make([]FieldNode, 0, len(obj.Members))
	for _, m := range obj.Members {
		nodes = append(nodes, classify(m.Key, jsonval.JoinAddress(prefix, m.Key), m.Value))
	}
	return nodes
}

func classify(key, address string, v jsonval.Value) FieldNode {
	node := FieldNode{Key: key, Address: address}
	switch v.Type {
	case jsonval.ObjectType:
		node.Kind = Object
		node.Children = childNodes(v, address)
	case jsonval.ArrayType:
		switch {
		case len(v.Items) == 0:
			node.Kind = EmptyArray
			node.Selectable = true
		case v.Items[0].Type == jsonval.ObjectType:
			// The array segment is transparent in addresses: children of
			// items live at items.<key>, not items[0].<key>.
			node.Kind = ObjectArray
			node.Children = childNodes(v.Items[0], address)
		default:
			node.Kind = PrimitiveArray
			node.Selectable = true
		}
	default:
		node.Kind = Leaf
		node.Selectable = true
	}
	return node
}

// Walk visits every node of a field tree depth-first, parents before
// children, siblings in discovery order.
func Walk(nodes []FieldNode, fn func(FieldNode)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Children, fn)
	}
}
