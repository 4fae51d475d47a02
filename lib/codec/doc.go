// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used to emit decoded
// system records in binary form.
//
// The CLI prints records as JSON by default. CBOR output (sysinfo
// decode --format cbor) is for tools that archive or diff records:
// the encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same record always produces the same bytes and two captures from
// one machine compare equal byte for byte.
//
// Record types carry only `json` struct tags. fxamacker/cbor falls
// back to `json` tags when `cbor` tags are absent, so one tag set
// names the fields in both formats. Fixed-size byte arrays such as
// the 8-byte LUID encode as CBOR byte strings.
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// Diagnose renders CBOR in diagnostic notation (RFC 8949 §8) for
// sysinfo decode --format diag, with byte strings in hex.
package codec
