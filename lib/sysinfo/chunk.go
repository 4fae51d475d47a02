// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"bytes"
	"fmt"
)

// Chunk constants shared with the producers that write system info
// into capture files.
const (
	// ChunkIdentifier names the chunk holding the system info document.
	ChunkIdentifier = "SystemInfo"

	// ChunkVersion is the chunk version current producers write.
	ChunkVersion uint32 = 1

	// ChunkVersionMax is the newest chunk version DecodeChunk reads.
	ChunkVersionMax = ChunkVersion
)

// ChunkSource is a container of named, versioned chunks. The methods
// address the first instance of the named chunk.
type ChunkSource interface {
	// ContainsChunk reports whether a chunk with the identifier exists.
	ContainsChunk(identifier string) bool

	// ChunkVersion returns the version stored with the chunk.
	ChunkVersion(identifier string) (uint32, error)

	// ChunkDataSize returns the chunk's data size in bytes.
	ChunkDataSize(identifier string) (int64, error)

	// ReadChunkData reads the chunk's data into buffer, which holds at
	// least ChunkDataSize bytes.
	ReadChunkData(identifier string, buffer []byte) error
}

// DecodeChunk reads the system info chunk from source and decodes it.
// A missing chunk returns ErrChunkNotFound. A chunk newer than
// ChunkVersionMax returns a *ChunkVersionError before any data is
// read.
func DecodeChunk(source ChunkSource) (SystemRecord, error) {
	text, err := ReadChunkText(source, ChunkIdentifier, 0, ChunkVersionMax)
	if err != nil {
		return SystemRecord{}, err
	}
	return Decode(text)
}

// UnwrapChunk returns the system info chunk's text as stored, subject
// to the same presence and version checks as DecodeChunk.
func UnwrapChunk(source ChunkSource) (string, error) {
	return ReadChunkText(source, ChunkIdentifier, 0, ChunkVersionMax)
}

// ReadChunkText performs the presence check, version guard, and
// bounded read for a chunk holding text. Versions outside
// [minVersion, maxVersion] return a *ChunkVersionError without reading
// data. The text ends at the first NUL byte, as producers write C
// strings.
func ReadChunkText(source ChunkSource, identifier string, minVersion, maxVersion uint32) (string, error) {
	if !source.ContainsChunk(identifier) {
		return "", fmt.Errorf("%w: %q", ErrChunkNotFound, identifier)
	}

	version, err := source.ChunkVersion(identifier)
	if err != nil {
		return "", fmt.Errorf("sysinfo: reading version of chunk %q: %w", identifier, err)
	}
	if version < minVersion || version > maxVersion {
		return "", &ChunkVersionError{Identifier: identifier, Version: version, Min: minVersion, Max: maxVersion}
	}

	size, err := source.ChunkDataSize(identifier)
	if err != nil {
		return "", fmt.Errorf("sysinfo: reading size of chunk %q: %w", identifier, err)
	}
	if size < 0 {
		return "", fmt.Errorf("sysinfo: chunk %q reports negative size %d", identifier, size)
	}

	buffer := make([]byte, size+1)
	if err := source.ReadChunkData(identifier, buffer[:size]); err != nil {
		return "", fmt.Errorf("sysinfo: reading chunk %q: %w", identifier, err)
	}
	buffer[size] = 0

	if end := bytes.IndexByte(buffer, 0); end >= 0 {
		buffer = buffer[:end]
	}
	return string(buffer), nil
}
