// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// KindSyntax: the text is not a well-formed JSON document.
	KindSyntax ErrorKind = iota + 1

	// KindSchema: the document's major version selects no known
	// schema revision.
	KindSchema

	// KindField: a present field has a JSON type that cannot convert
	// to the record field's type.
	KindField
)

func (kind ErrorKind) String() string {
	switch kind {
	case KindSyntax:
		return "syntax"
	case KindSchema:
		return "schema"
	case KindField:
		return "field"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// DecodeError is returned by Decode and DecodeChunk when the document
// cannot be decoded. The record returned alongside it is always the
// zero SystemRecord.
type DecodeError struct {
	Kind ErrorKind
	Err  error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("sysinfo: %s error: %v", err.Kind, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// FieldError reports a present field whose JSON type does not convert
// to the requested Go type.
type FieldError struct {
	// Path locates the field relative to the system object, e.g.
	// "gpus[0].asic.gpuIndex".
	Path string

	// Want is the JSON shape the field must have ("unsigned integer",
	// "string", "boolean", "object").
	Want string

	// Got is the JSON type actually present.
	Got string
}

func (err *FieldError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", err.Path, err.Want, err.Got)
}

var (
	// ErrInvalidJSON is wrapped by a KindSyntax DecodeError.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrUnsupportedVersion is wrapped by a KindSchema DecodeError.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrChunkNotFound is returned by DecodeChunk and ReadChunkText
	// when the container lacks the requested chunk.
	ErrChunkNotFound = errors.New("sysinfo: chunk not found")
)

// ChunkVersionError is returned when a stored chunk's version is
// outside the range the reader understands. No chunk data is read.
type ChunkVersionError struct {
	Identifier string
	Version    uint32
	Min        uint32
	Max        uint32
}

func (err *ChunkVersionError) Error() string {
	if err.Version > err.Max {
		return fmt.Sprintf("sysinfo: chunk %q has version %d, newest supported is %d",
			err.Identifier, err.Version, err.Max)
	}
	return fmt.Sprintf("sysinfo: chunk %q has version %d, oldest supported is %d",
		err.Identifier, err.Version, err.Min)
}

// IsKind reports whether err is a DecodeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var decodeError *DecodeError
	return errors.As(err, &decodeError) && decodeError.Kind == kind
}

// errStop ends a Node.Each iteration early without reporting a failure.
var errStop = errors.New("stop iteration")
