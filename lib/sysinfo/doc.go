// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sysinfo decodes the "system description" document that GPU
// profiling tools embed in their capture files: a JSON inventory of the
// driver, operating system, CPUs, GPUs, and (in newer documents) the
// running processes of the machine the capture was taken on.
//
// The document is versioned. The schema revision is read from the
// document itself and selects a population strategy:
//
//   - [SchemaV1] populates the devdriver, driver, os, cpus, and gpus
//     sections.
//   - [SchemaV2] runs the V1 population unchanged and then adds the
//     processes list.
//
// A later revision extends the previous one the same way: it calls the
// previous revision's population first and only adds fields. Any
// document a revision could ever produce therefore decodes identically
// under every later build.
//
// The version field has two shapes. The current producers write an
// object ({"major": 2, "minor": 0, ...}); when that object omits major
// it defaults to 2. Legacy producers write a bare integer, which is the
// major version, and documents without a version field are version 1.
//
// Every section is optional. A missing field or subtree leaves the
// corresponding record field at its zero value. A present field with
// the wrong JSON type (a string where a number belongs, say) is a
// [*FieldError] and fails the whole decode: the caller gets the zero
// [SystemRecord] and a [*DecodeError] of kind [KindField].
//
// A few fields tolerate malformed input instead of failing:
//
//   - The 8-byte LUID is a hex string; malformed byte pairs decode as
//     zero ([DecodeLUID]).
//   - The driver packaging version ("23.40.12") derives a major/minor
//     pair; a string without the expected dotted structure leaves them
//     at zero ([ParsePackagingVersion]).
//   - The compute-unit mask is an array of arrays of unsigned integers;
//     any structural violation discards the whole matrix.
//
// Documents may arrive wrapped in an envelope ({"system": {...}}) or as
// the bare inner object, which is how capture files store them. [Decode]
// accepts both. [Unwrap] strips the envelope without decoding.
//
// Inside a capture file the document lives in a chunk named
// [ChunkIdentifier]. [DecodeChunk] checks the chunk exists, refuses chunk
// versions newer than [ChunkVersionMax] without reading any bytes, and
// then decodes the chunk contents. The container is consumed through the
// [ChunkSource] interface; lib/chunkfile provides the on-disk
// implementation.
//
// All functions are stateless and safe for concurrent use. A decoded
// record is built fresh on every call and belongs to the caller. The
// package does not log.
package sysinfo
