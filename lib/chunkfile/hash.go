// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of a chunk's uncompressed data.
type Hash [32]byte

// dataDomainKey keys the chunk data hash. The bytes are the ASCII
// domain name zero-padded to 32 bytes; changing them invalidates
// every existing chunk file.
var dataDomainKey = [32]byte{
	's', 'y', 's', 'i', 'n', 'f', 'o', '.', 'c', 'h', 'u', 'n', 'k', 'f', 'i', 'l',
	'e', '.', 'd', 'a', 't', 'a', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashData returns the keyed hash stored in a chunk's index entry.
func HashData(data []byte) Hash {
	hasher, err := blake3.NewKeyed(dataDomainKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("chunkfile: blake3 keyed hasher: " + err.Error())
	}
	hasher.Write(data)
	var result Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// String returns the hash as lowercase hex.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// Short returns the first 12 hex digits, enough to tell chunks apart
// in listings.
func (hash Hash) Short() string {
	return hex.EncodeToString(hash[:6])
}
