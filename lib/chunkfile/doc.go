// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkfile reads and writes chunk files: containers of named,
// versioned byte blobs ("chunks") such as the system info and driver
// overrides documents a capture tool stores next to its trace data.
//
// # Format
//
// All integers are little-endian.
//
//	offset  size  field
//	0       8     magic: "SICHUNK" + format version byte (1)
//	8       4     chunk count
//	12      96*N  chunk index, one entry per chunk
//	...           chunk data, in index order, no padding
//
// Each index entry is 96 bytes:
//
//	0       32    identifier, NUL-padded ASCII
//	32      4     instance: position among chunks sharing the identifier
//	36      4     chunk version, owned by the chunk's producer
//	40      1     compression tag (0 none, 1 lz4, 2 zstd)
//	41      3     reserved, zero
//	44      4     reserved, zero
//	48      8     stored size: bytes occupied in the data section
//	56      8     data size: bytes after decompression
//	64      32    BLAKE3 keyed hash of the uncompressed data
//
// The index precedes the data, so [Builder] buffers every chunk until
// [Builder.WriteTo]. Readers parse the index once on [Open] and then
// serve chunk reads with ReadAt, which makes a [File] safe for
// concurrent reads.
//
// Every read decompresses the chunk and verifies its hash; a mismatch
// is an error rather than silently corrupt data.
//
// A chunk is addressed by identifier and instance. The methods without
// an instance argument (ContainsChunk, ChunkVersion, ChunkDataSize,
// ReadChunkData) address instance 0, which is the contract the
// document decoders in lib/sysinfo and lib/driveroverrides consume.
package chunkfile
