// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package driveroverrides

import (
	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
)

// IsChunkPresent reports whether source holds a driver overrides chunk.
func IsChunkPresent(source sysinfo.ChunkSource) bool {
	return source.ContainsChunk(ChunkIdentifier)
}

// ReadChunk reads and filters the driver overrides chunk. Chunk
// versions outside [ChunkVersionMin, ChunkVersionMax] return a
// *sysinfo.ChunkVersionError without reading data.
func ReadChunk(source sysinfo.ChunkSource) (Overrides, error) {
	text, version, err := readChunk(source)
	if err != nil {
		return Overrides{}, err
	}
	return Decode(text, version)
}

// ParseChunk is ReadChunk returning the filtered document as JSON.
func ParseChunk(source sysinfo.ChunkSource) (string, error) {
	text, version, err := readChunk(source)
	if err != nil {
		return "", err
	}
	return Parse(text, version)
}

func readChunk(source sysinfo.ChunkSource) (string, uint32, error) {
	text, err := sysinfo.ReadChunkText(source, ChunkIdentifier, ChunkVersionMin, ChunkVersionMax)
	if err != nil {
		return "", 0, err
	}
	// ReadChunkText has already read the version successfully.
	version, _ := source.ChunkVersion(ChunkIdentifier)
	return text, version, nil
}
