// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"fmt"

	"github.com/tidwall/pretty"
)

// Decode decodes a system info document into a SystemRecord. The text
// may be the full document ({"system": {...}}) or the bare system
// object. On failure Decode returns the zero SystemRecord and a
// *DecodeError.
func Decode(text string) (SystemRecord, error) {
	root, ok := ParseDocument(text)
	if !ok {
		return SystemRecord{}, &DecodeError{Kind: KindSyntax, Err: ErrInvalidJSON}
	}
	system := locateSystem(root)

	version, err := resolveVersion(system)
	if err != nil {
		return SystemRecord{}, &DecodeError{Kind: KindField, Err: err}
	}
	schema, ok := SelectSchema(version.Major)
	if !ok {
		return SystemRecord{}, &DecodeError{
			Kind: KindSchema,
			Err:  fmt.Errorf("%w: major %d", ErrUnsupportedVersion, version.Major),
		}
	}

	record := SystemRecord{Version: version}
	if err := schema.populate(system, &record); err != nil {
		return SystemRecord{}, &DecodeError{Kind: KindField, Err: err}
	}
	return record, nil
}

// DecodeBytes is Decode for a byte slice.
func DecodeBytes(data []byte) (SystemRecord, error) {
	return Decode(string(data))
}

// Unwrap returns the system object of a full document as compact JSON,
// keeping the document's member order. Text without a "system" member
// is returned unchanged. Text that is not valid JSON yields "".
func Unwrap(text string) string {
	root, ok := ParseDocument(text)
	if !ok {
		return ""
	}
	if !root.Has(keySystem) {
		return text
	}
	return string(pretty.Ugly([]byte(root.Child(keySystem).Raw())))
}

// locateSystem returns the "system" member of root, or root itself when
// the document is already the bare system object.
func locateSystem(root Node) Node {
	if root.Has(keySystem) {
		system := root.Child(keySystem)
		system.path = ""
		return system
	}
	return root
}
