// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Builder accumulates chunks and writes them as a chunk file. The
// index precedes the data, so all chunk data stays in memory until
// WriteTo.
//
//	builder := chunkfile.NewBuilder()
//	err := builder.AddChunk("SystemInfo", 1, document, chunkfile.CompressionAuto)
//	...
//	_, err = builder.WriteTo(file)
type Builder struct {
	entries []Entry
	data    [][]byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddChunk compresses data with tag and appends it as the next
// instance of identifier. CompressionAuto selects a tag by probing the
// data. Data that does not shrink under the requested compression is
// stored uncompressed. The builder keeps its own copy of data.
func (builder *Builder) AddChunk(identifier string, version uint32, data []byte, tag CompressionTag) error {
	if err := validateIdentifier(identifier); err != nil {
		return err
	}
	if tag == CompressionAuto {
		tag = SelectCompression(data)
	}
	if !tag.storable() {
		return fmt.Errorf("chunk %q: unsupported compression tag %s", identifier, tag)
	}

	stored, err := compress(data, tag)
	if errors.Is(err, errIncompressible) {
		stored, tag = data, CompressionNone
	} else if err != nil {
		return fmt.Errorf("chunk %q: %w", identifier, err)
	}
	if tag == CompressionNone {
		stored = append([]byte(nil), data...)
	}

	var instance uint32
	for _, entry := range builder.entries {
		if entry.Identifier == identifier {
			instance++
		}
	}

	builder.entries = append(builder.entries, Entry{
		Identifier:  identifier,
		Instance:    instance,
		Version:     version,
		Compression: tag,
		StoredSize:  uint64(len(stored)),
		DataSize:    uint64(len(data)),
		Hash:        HashData(data),
	})
	builder.data = append(builder.data, stored)
	return nil
}

// ChunkCount returns the number of chunks added so far.
func (builder *Builder) ChunkCount() int {
	return len(builder.entries)
}

// Entries returns the index entries of the chunks added so far.
func (builder *Builder) Entries() []Entry {
	return append([]Entry(nil), builder.entries...)
}

// WriteTo writes the chunk file to writer and returns the number of
// bytes written. An empty builder writes a valid file with no chunks.
// The builder is unchanged and may be written again.
func (builder *Builder) WriteTo(writer io.Writer) (int64, error) {
	counter := &countingWriter{writer: writer}

	if _, err := counter.Write(magic[:]); err != nil {
		return counter.written, fmt.Errorf("writing magic: %w", err)
	}
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(builder.entries)))
	if _, err := counter.Write(count[:]); err != nil {
		return counter.written, fmt.Errorf("writing chunk count: %w", err)
	}

	for index := range builder.entries {
		encoded := builder.entries[index].marshal()
		if _, err := counter.Write(encoded[:]); err != nil {
			return counter.written, fmt.Errorf("writing index entry %d: %w", index, err)
		}
	}

	for index, data := range builder.data {
		if _, err := counter.Write(data); err != nil {
			return counter.written, fmt.Errorf("writing chunk %q data: %w", builder.entries[index].Identifier, err)
		}
	}
	return counter.written, nil
}

type countingWriter struct {
	writer  io.Writer
	written int64
}

func (counter *countingWriter) Write(data []byte) (int, error) {
	written, err := counter.writer.Write(data)
	counter.written += int64(written)
	return written, err
}
