// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
)

func sampleRecord() sysinfo.SystemRecord {
	return sysinfo.SystemRecord{
		Version: sysinfo.FormatVersion{Major: 2, Minor: 1},
		Driver:  sysinfo.DriverInfo{Name: "amdgpu", PackagingVersion: "24.3.1", PackagingVersionMajor: 24, PackagingVersionMinor: 3},
		GPUs: []sysinfo.GPUInfo{{
			Name: "AMD Instinct MI300X",
			ASIC: sysinfo.ASICInfo{
				GPUIndex: sysinfo.UnknownGPUIndex,
				CUMask:   sysinfo.CUMask{{0xff, 0x7f}},
				IDs:      sysinfo.IDInfo{LUID: [8]byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 1}},
			},
			Memory: sysinfo.MemoryInfo{Heaps: []sysinfo.HeapInfo{{HeapType: "local", Size: 1 << 30}}},
		}},
		Processes: []sysinfo.Process{{Name: "rocprof", ID: 77}},
	}
}

func TestRecordRoundTrip(t *testing.T) {
	original := sampleRecord()
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sysinfo.SystemRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(sampleRecord())
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(sampleRecord())
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestJSONTagFallback(t *testing.T) {
	data, err := Marshal(sysinfo.PCIInfo{Bus: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"bus", "device", "function"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("key %q missing from %v", key, decoded)
		}
	}
}

func TestDiagnoseLUIDAsHexByteString(t *testing.T) {
	data, err := Marshal(sysinfo.IDInfo{LUID: [8]byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, rest, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("Diagnose left %d bytes", len(rest))
	}
	if !strings.Contains(notation, `h'deadbeef00000001'`) {
		t.Errorf("diagnostic notation %s lacks hex LUID", notation)
	}
}

func TestEncoderSequence(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, name := range []string{"a", "b"} {
		if err := encoder.Encode(sysinfo.Process{Name: name}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	data := buffer.Bytes()
	for _, want := range []string{`"a"`, `"b"`} {
		notation, rest, err := Diagnose(data)
		if err != nil {
			t.Fatalf("Diagnose: %v", err)
		}
		if !strings.Contains(notation, want) {
			t.Errorf("item %s lacks %s", notation, want)
		}
		data = rest
	}
}
