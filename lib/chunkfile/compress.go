// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies how a chunk's data is stored. Tags 0-2 are
// written into index entries and are format constants.
type CompressionTag uint8

const (
	// CompressionNone stores the data as is.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 stores an LZ4 block. Fast to decode with a
	// modest ratio.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd stores a zstd frame at the default level. JSON
	// documents typically shrink 4-8x.
	CompressionZstd CompressionTag = 2

	// CompressionAuto asks Builder.AddChunk to pick a tag with
	// SelectCompression. Never written to a file.
	CompressionAuto CompressionTag = 0xFF
)

func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	case CompressionAuto:
		return "auto"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses "none", "lz4", "zstd", or "auto".
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	case "auto":
		return CompressionAuto, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4, zstd, or auto)", name)
	}
}

// storable reports whether tag may appear in an index entry.
func (tag CompressionTag) storable() bool {
	return tag <= CompressionZstd
}

// errIncompressible reports that compressing did not make the data
// smaller. Builder stores such chunks uncompressed.
var errIncompressible = errors.New("data is incompressible")

func compress(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		return compressLZ4(data)
	case CompressionZstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression tag %s", tag)
	}
}

// decompress reverses compress. dataSize is the size recorded in the
// index and must match the decompressed length exactly.
func decompress(stored []byte, tag CompressionTag, dataSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(stored) != dataSize {
			return nil, fmt.Errorf("stored size %d does not match data size %d", len(stored), dataSize)
		}
		return stored, nil
	case CompressionLZ4:
		return decompressLZ4(stored, dataSize)
	case CompressionZstd:
		return decompressZstd(stored, dataSize)
	default:
		return nil, fmt.Errorf("unsupported compression tag %s", tag)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports 0 for data it cannot compress.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(stored []byte, dataSize int) ([]byte, error) {
	destination := make([]byte, dataSize)
	read, err := lz4.UncompressBlock(stored, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != dataSize {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, dataSize)
	}
	return destination, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use through
// EncodeAll and DecodeAll, so one of each serves the whole process.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("chunkfile: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("chunkfile: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(stored []byte, dataSize int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(stored, make([]byte, 0, dataSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != dataSize {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), dataSize)
	}
	return result, nil
}

// smallChunkThreshold is the size below which compression framing
// costs more than it saves.
const smallChunkThreshold = 64

// SelectCompression picks a tag for data by probing it with zstd: a
// ratio of at least 1.5 selects zstd, at least 1.1 selects LZ4, and
// anything lower (or tiny data) is stored uncompressed.
func SelectCompression(data []byte) CompressionTag {
	if len(data) < smallChunkThreshold {
		return CompressionNone
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return CompressionZstd
	case ratio >= 1.1:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
