// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Node is one element of a parsed document: an object, array, or
// scalar, together with its location for error reporting. The zero
// Node is absent.
type Node struct {
	value gjson.Result
	path  string
	key   string
}

// ParseDocument parses text into its root node, reporting false when
// text is not well-formed JSON. Top-level scalars and arrays are valid
// documents.
func ParseDocument(text string) (Node, bool) {
	if !gjson.Valid(text) {
		return Node{}, false
	}
	return Node{value: gjson.Parse(text)}, true
}

// Exists reports whether the node is present in the document. A
// present null exists.
func (node Node) Exists() bool {
	return node.value.Exists()
}

// IsObject reports whether the node is a JSON object.
func (node Node) IsObject() bool {
	return node.value.IsObject()
}

// IsNull reports whether the node is a JSON null.
func (node Node) IsNull() bool {
	return node.value.Exists() && node.value.Type == gjson.Null
}

// IsArray reports whether the node is a JSON array.
func (node Node) IsArray() bool {
	return node.value.IsArray()
}

// Path returns the node's location relative to the root, e.g.
// "gpus[1].memory.heaps.local".
func (node Node) Path() string {
	return node.path
}

// Key returns the object key the node was reached through, or "" for
// array elements and the root.
func (node Node) Key() string {
	return node.key
}

// Raw returns the node's JSON text exactly as it appears in the
// document.
func (node Node) Raw() string {
	return node.value.Raw
}

// Child returns the member of an object node named name. When the
// object repeats the key the last occurrence wins. Non-object nodes
// have no children.
func (node Node) Child(name string) Node {
	child := Node{path: joinPath(node.path, name), key: name}
	if !node.value.IsObject() {
		return child
	}
	node.value.ForEach(func(key, value gjson.Result) bool {
		if key.Str == name {
			child.value = value
		}
		return true
	})
	return child
}

// Has reports whether an object node has a member named name.
func (node Node) Has(name string) bool {
	return node.Child(name).Exists()
}

// Each calls fn for every element of the node in document order:
// array elements, object member values, or a scalar node itself once.
// A null or absent node yields nothing. Iteration stops at the first
// error fn returns.
func (node Node) Each(fn func(Node) error) error {
	if !node.Exists() || node.IsNull() {
		return nil
	}
	switch {
	case node.value.IsArray():
		var (
			err   error
			index int
		)
		node.value.ForEach(func(_, value gjson.Result) bool {
			err = fn(Node{value: value, path: node.path + "[" + strconv.Itoa(index) + "]"})
			index++
			return err == nil
		})
		return err
	case node.value.IsObject():
		var err error
		node.value.ForEach(func(key, value gjson.Result) bool {
			err = fn(Node{value: value, path: joinPath(node.path, key.Str), key: key.Str})
			return err == nil
		})
		return err
	default:
		return fn(node)
	}
}

// Uint64 returns the member named name converted to an unsigned
// integer, or fallback when the member is absent. Numbers and booleans
// convert: negative integers wrap, fractions truncate, true is 1.
// Any other JSON type is a *FieldError.
func (node Node) Uint64(name string, fallback uint64) (uint64, error) {
	child := node.Child(name)
	if !child.Exists() {
		return fallback, nil
	}
	return child.asUint64()
}

// Uint32 is Uint64 truncated to 32 bits.
func (node Node) Uint32(name string, fallback uint32) (uint32, error) {
	child := node.Child(name)
	if !child.Exists() {
		return fallback, nil
	}
	value, err := child.asUint64()
	return uint32(value), err
}

// String returns the member named name, which must be a JSON string,
// or fallback when the member is absent.
func (node Node) String(name, fallback string) (string, error) {
	child := node.Child(name)
	if !child.Exists() {
		return fallback, nil
	}
	if child.value.Type != gjson.String {
		return "", child.typeError("string")
	}
	return child.value.Str, nil
}

// Bool returns the member named name, which must be a JSON boolean, or
// fallback when the member is absent.
func (node Node) Bool(name string, fallback bool) (bool, error) {
	child := node.Child(name)
	if !child.Exists() {
		return fallback, nil
	}
	switch child.value.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	default:
		return false, child.typeError("boolean")
	}
}

// isUnsigned reports whether the node is a JSON number written as a
// non-negative integer.
func (node Node) isUnsigned() bool {
	if node.value.Type != gjson.Number {
		return false
	}
	_, err := strconv.ParseUint(node.value.Raw, 10, 64)
	return err == nil
}

func (node Node) asUint64() (uint64, error) {
	switch node.value.Type {
	case gjson.True:
		return 1, nil
	case gjson.False:
		return 0, nil
	case gjson.Number:
		return numberToUint64(node.value), nil
	default:
		return 0, node.typeError("unsigned integer")
	}
}

// numberToUint64 converts a JSON number the way a C cast would:
// integers that fit in uint64 are exact, negative integers wrap, and
// everything else goes through float64 with truncation toward zero.
func numberToUint64(value gjson.Result) uint64 {
	if unsigned, err := strconv.ParseUint(value.Raw, 10, 64); err == nil {
		return unsigned
	}
	if signed, err := strconv.ParseInt(value.Raw, 10, 64); err == nil {
		return uint64(signed)
	}
	float := value.Num
	switch {
	case math.IsNaN(float):
		return 0
	case float < 0:
		if float <= math.MinInt64 {
			return 1 << 63
		}
		return uint64(int64(float))
	case float >= math.MaxUint64:
		return math.MaxUint64
	default:
		return uint64(float)
	}
}

func (node Node) typeError(want string) *FieldError {
	return &FieldError{Path: node.path, Want: want, Got: typeName(node.value)}
}

func typeName(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if value.IsArray() {
			return "array"
		}
		return "object"
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
