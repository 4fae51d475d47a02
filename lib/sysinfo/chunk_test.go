// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"errors"
	"reflect"
	"testing"
)

// fakeChunkSource holds chunks in memory and counts data reads.
type fakeChunkSource struct {
	chunks  map[string]fakeChunk
	reads   int
	readErr error
}

type fakeChunk struct {
	version uint32
	data    []byte
}

func (source *fakeChunkSource) ContainsChunk(identifier string) bool {
	_, ok := source.chunks[identifier]
	return ok
}

func (source *fakeChunkSource) ChunkVersion(identifier string) (uint32, error) {
	chunk, ok := source.chunks[identifier]
	if !ok {
		return 0, errors.New("no such chunk")
	}
	return chunk.version, nil
}

func (source *fakeChunkSource) ChunkDataSize(identifier string) (int64, error) {
	chunk, ok := source.chunks[identifier]
	if !ok {
		return 0, errors.New("no such chunk")
	}
	return int64(len(chunk.data)), nil
}

func (source *fakeChunkSource) ReadChunkData(identifier string, buffer []byte) error {
	source.reads++
	if source.readErr != nil {
		return source.readErr
	}
	copy(buffer, source.chunks[identifier].data)
	return nil
}

func singleChunk(version uint32, data string) *fakeChunkSource {
	return &fakeChunkSource{chunks: map[string]fakeChunk{
		ChunkIdentifier: {version: version, data: []byte(data)},
	}}
}

func TestDecodeChunk(t *testing.T) {
	source := singleChunk(ChunkVersion, systemV1)
	record, err := DecodeChunk(source)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if want := wantV1Record(); !reflect.DeepEqual(record, want) {
		t.Errorf("DecodeChunk mismatch\ngot:  %+v\nwant: %+v", record, want)
	}
	if source.reads != 1 {
		t.Errorf("reads = %d, want 1", source.reads)
	}
}

func TestDecodeChunkMissing(t *testing.T) {
	source := &fakeChunkSource{chunks: map[string]fakeChunk{
		"DriverOverrides": {version: 3, data: []byte(`{}`)},
	}}
	_, err := DecodeChunk(source)
	if !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("DecodeChunk error = %v, want ErrChunkNotFound", err)
	}
	if source.reads != 0 {
		t.Errorf("reads = %d, want 0", source.reads)
	}
}

func TestDecodeChunkNewerVersionNeverReads(t *testing.T) {
	source := singleChunk(ChunkVersionMax+1, systemV1)
	record, err := DecodeChunk(source)
	var versionError *ChunkVersionError
	if !errors.As(err, &versionError) {
		t.Fatalf("DecodeChunk error = %v, want *ChunkVersionError", err)
	}
	if versionError.Version != ChunkVersionMax+1 || versionError.Max != ChunkVersionMax {
		t.Errorf("ChunkVersionError = %+v", versionError)
	}
	if source.reads != 0 {
		t.Errorf("reads = %d, want 0", source.reads)
	}
	if !reflect.DeepEqual(record, SystemRecord{}) {
		t.Errorf("record = %+v, want zero record", record)
	}
}

func TestDecodeChunkOlderVersionAccepted(t *testing.T) {
	if _, err := DecodeChunk(singleChunk(0, `{"version": 1}`)); err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
}

func TestDecodeChunkReadError(t *testing.T) {
	source := singleChunk(ChunkVersion, systemV1)
	source.readErr = errors.New("disk on fire")
	_, err := DecodeChunk(source)
	if !errors.Is(err, source.readErr) {
		t.Fatalf("DecodeChunk error = %v, want wrapped read error", err)
	}
}

func TestDecodeChunkPropagatesDecodeFailure(t *testing.T) {
	_, err := DecodeChunk(singleChunk(ChunkVersion, `{"version": 99}`))
	if !IsKind(err, KindSchema) {
		t.Fatalf("DecodeChunk error = %v, want schema error", err)
	}
}

func TestDecodeChunkStopsAtNUL(t *testing.T) {
	source := singleChunk(ChunkVersion, "{\"os\": {\"hostname\": \"a\"}}\x00garbage")
	record, err := DecodeChunk(source)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if record.OS.Hostname != "a" {
		t.Errorf("Hostname = %q, want %q", record.OS.Hostname, "a")
	}
}

func TestDecodeChunkEmpty(t *testing.T) {
	_, err := DecodeChunk(singleChunk(ChunkVersion, ""))
	if !IsKind(err, KindSyntax) {
		t.Fatalf("DecodeChunk error = %v, want syntax error", err)
	}
}

func TestUnwrapChunk(t *testing.T) {
	text, err := UnwrapChunk(singleChunk(ChunkVersion, systemV1))
	if err != nil {
		t.Fatalf("UnwrapChunk: %v", err)
	}
	if text != systemV1 {
		t.Errorf("UnwrapChunk returned altered text")
	}
}

func TestReadChunkTextVersionRange(t *testing.T) {
	tests := []struct {
		version uint32
		wantErr bool
	}{
		{1, true},
		{2, false},
		{3, false},
		{4, true},
	}
	for _, test := range tests {
		source := &fakeChunkSource{chunks: map[string]fakeChunk{
			"DriverOverrides": {version: test.version, data: []byte(`{}`)},
		}}
		_, err := ReadChunkText(source, "DriverOverrides", 2, 3)
		if (err != nil) != test.wantErr {
			t.Errorf("version %d: err = %v, wantErr %v", test.version, err, test.wantErr)
		}
		if test.wantErr && source.reads != 0 {
			t.Errorf("version %d: reads = %d, want 0", test.version, source.reads)
		}
	}
}
