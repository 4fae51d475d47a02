// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrChunkNotFound is returned when a file has no chunk with the
// requested identifier and instance.
var ErrChunkNotFound = errors.New("chunk not found")

// maxDataSize bounds a single chunk's decompressed size so a corrupt
// index cannot trigger an enormous allocation.
const maxDataSize = 1 << 30

// File is an open chunk file. Its methods are safe for concurrent use.
type File struct {
	reader  io.ReaderAt
	closer  io.Closer
	entries []Entry
}

// Open parses the header and index of the chunk file held by reader,
// which is size bytes long. The index must describe data that fits
// within size.
func Open(reader io.ReaderAt, size int64) (*File, error) {
	if size < headerSize {
		return nil, fmt.Errorf("file is %d bytes, shorter than the %d-byte header", size, headerSize)
	}
	var header [headerSize]byte
	if err := readAt(reader, header[:], 0); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if [8]byte(header[:8]) != magic {
		if string(header[:7]) == string(magic[:7]) {
			return nil, fmt.Errorf("chunk file format version %d is not supported (this code reads version %d)",
				header[7], formatVersion)
		}
		return nil, fmt.Errorf("not a chunk file (invalid magic bytes)")
	}
	count := binary.LittleEndian.Uint32(header[8:12])

	indexSize := int64(count) * indexEntrySize
	if headerSize+indexSize > size {
		return nil, fmt.Errorf("index of %d chunks extends past end of file (%d bytes)", count, size)
	}
	index := make([]byte, indexSize)
	if err := readAt(reader, index, headerSize); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	entries := make([]Entry, count)
	offset := int64(headerSize) + indexSize
	instances := make(map[string]uint32)
	for position := range entries {
		entry, err := unmarshalEntry(index[position*indexEntrySize : (position+1)*indexEntrySize])
		if err != nil {
			return nil, fmt.Errorf("index entry %d: %w", position, err)
		}
		if entry.Instance != instances[entry.Identifier] {
			return nil, fmt.Errorf("index entry %d: chunk %q has instance %d, expected %d",
				position, entry.Identifier, entry.Instance, instances[entry.Identifier])
		}
		instances[entry.Identifier]++

		if entry.DataSize > maxDataSize {
			return nil, fmt.Errorf("chunk %q: data size %d exceeds limit %d", entry.Identifier, entry.DataSize, maxDataSize)
		}
		if entry.StoredSize > uint64(math.MaxInt64-offset) || offset+int64(entry.StoredSize) > size {
			return nil, fmt.Errorf("chunk %q: data extends past end of file", entry.Identifier)
		}
		entry.offset = offset
		offset += int64(entry.StoredSize)
		entries[position] = entry
	}

	return &File{reader: reader, entries: entries}, nil
}

// OpenFile opens the chunk file at path. Close releases it.
func OpenFile(path string) (*File, error) {
	osFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := osFile.Stat()
	if err != nil {
		osFile.Close()
		return nil, err
	}
	file, err := Open(osFile, info.Size())
	if err != nil {
		osFile.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.closer = osFile
	return file, nil
}

// Close releases the underlying file when the File came from OpenFile.
func (file *File) Close() error {
	if file.closer == nil {
		return nil
	}
	return file.closer.Close()
}

// ChunkCount returns the number of chunks in the file.
func (file *File) ChunkCount() int {
	return len(file.entries)
}

// Chunks returns the index entries in file order.
func (file *File) Chunks() []Entry {
	return append([]Entry(nil), file.entries...)
}

// Lookup returns the index entry for a chunk instance.
func (file *File) Lookup(identifier string, instance uint32) (Entry, error) {
	for _, entry := range file.entries {
		if entry.Identifier == identifier && entry.Instance == instance {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q instance %d", ErrChunkNotFound, identifier, instance)
}

// ContainsChunkAt reports whether the file holds the chunk instance.
func (file *File) ContainsChunkAt(identifier string, instance uint32) bool {
	_, err := file.Lookup(identifier, instance)
	return err == nil
}

// ChunkVersionAt returns the version stored with the chunk instance.
func (file *File) ChunkVersionAt(identifier string, instance uint32) (uint32, error) {
	entry, err := file.Lookup(identifier, instance)
	if err != nil {
		return 0, err
	}
	return entry.Version, nil
}

// ChunkDataSizeAt returns the decompressed size of the chunk instance.
func (file *File) ChunkDataSizeAt(identifier string, instance uint32) (int64, error) {
	entry, err := file.Lookup(identifier, instance)
	if err != nil {
		return 0, err
	}
	return int64(entry.DataSize), nil
}

// ReadChunkDataAt reads, decompresses, and verifies the chunk instance
// into buffer, which must hold at least its data size.
func (file *File) ReadChunkDataAt(identifier string, instance uint32, buffer []byte) error {
	entry, err := file.Lookup(identifier, instance)
	if err != nil {
		return err
	}
	if uint64(len(buffer)) < entry.DataSize {
		return fmt.Errorf("chunk %q: buffer of %d bytes is smaller than data size %d",
			identifier, len(buffer), entry.DataSize)
	}

	// Uncompressed chunks read straight into the caller's buffer.
	stored := buffer[:entry.StoredSize]
	if entry.Compression != CompressionNone {
		stored = make([]byte, entry.StoredSize)
	}
	if err := readAt(file.reader, stored, entry.offset); err != nil {
		return fmt.Errorf("chunk %q: reading %d bytes at offset %d: %w", identifier, entry.StoredSize, entry.offset, err)
	}

	data, err := decompress(stored, entry.Compression, int(entry.DataSize))
	if err != nil {
		return fmt.Errorf("chunk %q: %w", identifier, err)
	}
	if actual := HashData(data); actual != entry.Hash {
		return fmt.Errorf("chunk %q: hash mismatch: index has %s, data hashes to %s", identifier, entry.Hash, actual)
	}
	if entry.Compression != CompressionNone {
		copy(buffer, data)
	}
	return nil
}

// ReadChunk returns the data of the chunk instance in a new slice.
func (file *File) ReadChunk(identifier string, instance uint32) ([]byte, error) {
	size, err := file.ChunkDataSizeAt(identifier, instance)
	if err != nil {
		return nil, err
	}
	buffer := make([]byte, size)
	if err := file.ReadChunkDataAt(identifier, instance, buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// ContainsChunk reports whether the file holds instance 0 of the chunk.
func (file *File) ContainsChunk(identifier string) bool {
	return file.ContainsChunkAt(identifier, 0)
}

// ChunkVersion returns the version of instance 0 of the chunk.
func (file *File) ChunkVersion(identifier string) (uint32, error) {
	return file.ChunkVersionAt(identifier, 0)
}

// ChunkDataSize returns the decompressed size of instance 0 of the
// chunk.
func (file *File) ChunkDataSize(identifier string) (int64, error) {
	return file.ChunkDataSizeAt(identifier, 0)
}

// ReadChunkData reads instance 0 of the chunk into buffer.
func (file *File) ReadChunkData(identifier string, buffer []byte) error {
	return file.ReadChunkDataAt(identifier, 0, buffer)
}

// readAt fills buffer from reader at offset. An io.EOF that arrives
// with a full buffer is success, as io.ReaderAt permits.
func readAt(reader io.ReaderAt, buffer []byte, offset int64) error {
	if len(buffer) == 0 {
		return nil
	}
	read, err := reader.ReadAt(buffer, offset)
	if read == len(buffer) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}
