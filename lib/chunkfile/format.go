// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	formatVersion = 1

	// headerSize is the magic plus the chunk count.
	headerSize = 12

	// indexEntrySize is the fixed size of one index entry.
	indexEntrySize = 96

	// IdentifierSize is the longest chunk identifier, in bytes.
	IdentifierSize = 32
)

var magic = [8]byte{'S', 'I', 'C', 'H', 'U', 'N', 'K', formatVersion}

// HasMagic reports whether data starts with the chunk file magic of
// any format version. Callers use it to tell chunk files from JSON
// documents before calling Open.
func HasMagic(data []byte) bool {
	return len(data) >= len(magic) && bytes.Equal(data[:len(magic)-1], magic[:len(magic)-1])
}

// Entry describes one chunk in a file's index.
type Entry struct {
	// Identifier names the chunk, e.g. "SystemInfo".
	Identifier string

	// Instance distinguishes chunks sharing an identifier, counting
	// from 0 in file order.
	Instance uint32

	// Version is the chunk producer's format version.
	Version uint32

	Compression CompressionTag

	// StoredSize is the number of bytes the chunk occupies on disk.
	StoredSize uint64

	// DataSize is the chunk's size after decompression.
	DataSize uint64

	// Hash is the keyed BLAKE3 hash of the uncompressed data.
	Hash Hash

	// offset is the chunk's absolute position in the file.
	offset int64
}

func validateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("chunk identifier is empty")
	}
	if len(identifier) > IdentifierSize {
		return fmt.Errorf("chunk identifier %q is longer than %d bytes", identifier, IdentifierSize)
	}
	if bytes.IndexByte([]byte(identifier), 0) >= 0 {
		return fmt.Errorf("chunk identifier %q contains a NUL byte", identifier)
	}
	return nil
}

func (entry *Entry) marshal() [indexEntrySize]byte {
	var buffer [indexEntrySize]byte
	copy(buffer[0:32], entry.Identifier)
	binary.LittleEndian.PutUint32(buffer[32:36], entry.Instance)
	binary.LittleEndian.PutUint32(buffer[36:40], entry.Version)
	buffer[40] = byte(entry.Compression)
	binary.LittleEndian.PutUint64(buffer[48:56], entry.StoredSize)
	binary.LittleEndian.PutUint64(buffer[56:64], entry.DataSize)
	copy(buffer[64:96], entry.Hash[:])
	return buffer
}

func unmarshalEntry(buffer []byte) (Entry, error) {
	identifier := buffer[0:32]
	if end := bytes.IndexByte(identifier, 0); end >= 0 {
		if bytes.ContainsFunc(identifier[end:], func(r rune) bool { return r != 0 }) {
			return Entry{}, fmt.Errorf("identifier has bytes after its NUL padding")
		}
		identifier = identifier[:end]
	}
	if len(identifier) == 0 {
		return Entry{}, fmt.Errorf("identifier is empty")
	}

	if reserved := buffer[41:48]; !bytes.Equal(reserved, make([]byte, len(reserved))) {
		return Entry{}, fmt.Errorf("non-zero reserved bytes: %x", reserved)
	}

	entry := Entry{
		Identifier:  string(identifier),
		Instance:    binary.LittleEndian.Uint32(buffer[32:36]),
		Version:     binary.LittleEndian.Uint32(buffer[36:40]),
		Compression: CompressionTag(buffer[40]),
		StoredSize:  binary.LittleEndian.Uint64(buffer[48:56]),
		DataSize:    binary.LittleEndian.Uint64(buffer[56:64]),
	}
	copy(entry.Hash[:], buffer[64:96])

	if !entry.Compression.storable() {
		return Entry{}, fmt.Errorf("unsupported compression tag %d", uint8(entry.Compression))
	}
	if entry.Compression == CompressionNone && entry.StoredSize != entry.DataSize {
		return Entry{}, fmt.Errorf("uncompressed chunk has stored size %d but data size %d",
			entry.StoredSize, entry.DataSize)
	}
	return entry, nil
}
