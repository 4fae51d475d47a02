// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// systemV1 is a bare system object in the legacy layout: the version
// is a bare integer and there is no processes list.
const systemV1 = `{
	"version": 1,
	"devdriver": {"version": {"major": 42}, "tag": "release"},
	"driver": {
		"name": "AMD Radeon Software",
		"description": "Adrenalin Edition",
		"softwareVersion": "31.0.24033.1003",
		"packagingVersion": "24.3.1",
		"isClosedSource": true
	},
	"os": {
		"name": "Linux",
		"description": "Ubuntu 24.04 LTS",
		"hostname": "render-07",
		"memory": {"physical": 68719476736, "swap": 8589934592, "name": "DDR5"},
		"config": {
			"linux": {"powerDpmWritable": true, "drm": {"major": 3, "minor": 57}},
			"windows": {"etwSupport": {"isSupported": true, "hasPermission": false, "statusCode": 5, "needsRegistryOrUserGroup": true}}
		}
	},
	"cpus": [
		{
			"name": "AMD Ryzen 9 7950X",
			"architecture": "x86_64",
			"cpuId": "AuthenticAMD Family 25 Model 97",
			"deviceId": "CPU0",
			"vendorId": "AuthenticAMD",
			"virtualization": "AMD-V",
			"numPhysicalCores": 16,
			"numLogicalCores": 32,
			"speed": {"max": 5881},
			"cpuTimeClockFreq": 1000000000
		}
	],
	"gpus": [
		{
			"name": "AMD Radeon RX 7900 XTX",
			"pci": {"bus": 3, "device": 0, "function": 1},
			"asic": {
				"gpuIndex": 0,
				"gpuCounterFreq": 100000000,
				"engineClockHz": {"min": 500000000, "max": 2500000000},
				"numShaderEngines": 6,
				"numShaderArraysPerEngine": 2,
				"numCus": 96,
				"cuMask": [[255, 255], [255, 127]],
				"ids": {
					"gfxEngine": 1100,
					"family": 145,
					"eRev": 8,
					"revision": 200,
					"device": 29772,
					"subsystem": 1234,
					"vendor": 4098,
					"luid": "0102030405060708"
				}
			},
			"memory": {
				"type": "GDDR6",
				"memOpsPerClock": 16,
				"busBitWidth": 384,
				"bandwidthBytesPerSec": 960000000000,
				"memClockHz": {"min": 96000000, "max": 2500000000},
				"heaps": {
					"local": {"physicalAddress": 0, "size": 268435456},
					"invisible": {"physicalAddress": 268435456, "size": 25501368320}
				},
				"excludedVaRanges": [{"base": 4096, "size": 65536}]
			},
			"bigSw": {"major": 2024, "minor": 1, "misc": 7}
		}
	]
}`

func wantV1Record() SystemRecord {
	return SystemRecord{
		Version:   FormatVersion{Major: 1},
		DevDriver: DevDriverInfo{MajorVersion: 42, Tag: "release"},
		Driver: DriverInfo{
			Name:                  "AMD Radeon Software",
			Description:           "Adrenalin Edition",
			SoftwareVersion:       "31.0.24033.1003",
			PackagingVersion:      "24.3.1",
			IsClosedSource:        true,
			PackagingVersionMajor: 24,
			PackagingVersionMinor: 3,
		},
		OS: OSInfo{
			Name:        "Linux",
			Description: "Ubuntu 24.04 LTS",
			Hostname:    "render-07",
			Memory:      OSMemoryInfo{Physical: 68719476736, Swap: 8589934592, Type: "DDR5"},
			Config: ConfigInfo{
				PowerDPMWritable: true,
				DRMMajorVersion:  3,
				DRMMinorVersion:  57,
				ETW: ETWSupportInfo{
					IsSupported:              true,
					StatusCode:               5,
					NeedsRegistryOrUserGroup: true,
				},
			},
		},
		CPUs: []CPUInfo{{
			Name:                    "AMD Ryzen 9 7950X",
			Architecture:            "x86_64",
			CPUID:                   "AuthenticAMD Family 25 Model 97",
			DeviceID:                "CPU0",
			VendorID:                "AuthenticAMD",
			Virtualization:          "AMD-V",
			NumPhysicalCores:        16,
			NumLogicalCores:         32,
			MaxClockSpeed:           5881,
			TimestampClockFrequency: 1000000000,
		}},
		GPUs: []GPUInfo{{
			Name: "AMD Radeon RX 7900 XTX",
			PCI:  PCIInfo{Bus: 3, Device: 0, Function: 1},
			ASIC: ASICInfo{
				GPUIndex:                 0,
				GPUCounterFrequency:      100000000,
				EngineClock:              ClockInfo{Min: 500000000, Max: 2500000000},
				NumShaderEngines:         6,
				NumShaderArraysPerEngine: 2,
				NumCUs:                   96,
				CUMask:                   CUMask{{255, 255}, {255, 127}},
				IDs: IDInfo{
					GFXEngine: 1100,
					Family:    145,
					ERev:      8,
					Revision:  200,
					Device:    29772,
					Subsystem: 1234,
					Vendor:    4098,
					LUID:      [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
				},
			},
			Memory: MemoryInfo{
				Type:           "GDDR6",
				MemOpsPerClock: 16,
				BusBitWidth:    384,
				Bandwidth:      960000000000,
				MemoryClock:    ClockInfo{Min: 96000000, Max: 2500000000},
				Heaps: []HeapInfo{
					{HeapType: "local", PhysicalAddress: 0, Size: 268435456},
					{HeapType: "invisible", PhysicalAddress: 268435456, Size: 25501368320},
				},
				ExcludedVARanges: []ExcludedRangeInfo{{Base: 4096, Size: 65536}},
			},
			BigSW: SoftwareVersion{Major: 2024, Minor: 1, Misc: 7},
		}},
	}
}

// withVersion replaces the bare-integer version of systemV1.
func withVersion(version string) string {
	return strings.Replace(systemV1, `"version": 1,`, `"version": `+version+`,`, 1)
}

const processesMember = `"processes": [
		{"name": "game.exe", "path": "C:\\Games\\game.exe", "processId": 4242},
		{"name": "explorer.exe", "path": "C:\\Windows\\explorer.exe", "processId": 8}
	],`

func withProcesses(system string) string {
	return strings.Replace(system, `"devdriver":`, processesMember+"\n\t\"devdriver\":", 1)
}

func TestDecodeV1(t *testing.T) {
	record, err := Decode(systemV1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := wantV1Record(); !reflect.DeepEqual(record, want) {
		t.Errorf("Decode mismatch\ngot:  %+v\nwant: %+v", record, want)
	}
}

func TestDecodeEnvelope(t *testing.T) {
	record, err := Decode(`{"system": ` + systemV1 + `}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := wantV1Record(); !reflect.DeepEqual(record, want) {
		t.Errorf("enveloped decode differs from bare decode\ngot:  %+v\nwant: %+v", record, want)
	}
}

func TestDecodeV1IgnoresProcesses(t *testing.T) {
	record, err := Decode(withProcesses(systemV1))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if record.Processes != nil {
		t.Errorf("version 1 decoded processes: %+v", record.Processes)
	}
}

func TestDecodeV2(t *testing.T) {
	record, err := Decode(withProcesses(withVersion(`{"major": 2, "minor": 1, "patch": 3, "build": 4}`)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := wantV1Record()
	want.Version = FormatVersion{Major: 2, Minor: 1, Patch: 3, Build: 4}
	want.Processes = []Process{
		{Name: "game.exe", Path: `C:\Games\game.exe`, ID: 4242},
		{Name: "explorer.exe", Path: `C:\Windows\explorer.exe`, ID: 8},
	}
	if !reflect.DeepEqual(record, want) {
		t.Errorf("Decode mismatch\ngot:  %+v\nwant: %+v", record, want)
	}
}

func TestDecodeV2WithoutProcessesMatchesV1(t *testing.T) {
	v2, err := Decode(withVersion(`{"major": 2}`))
	if err != nil {
		t.Fatalf("Decode v2: %v", err)
	}
	v1, err := Decode(systemV1)
	if err != nil {
		t.Fatalf("Decode v1: %v", err)
	}
	v2.Version = v1.Version
	if !reflect.DeepEqual(v1, v2) {
		t.Errorf("v2 without processes differs from v1\nv1: %+v\nv2: %+v", v1, v2)
	}
}

func TestDecodeVersionResolution(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     FormatVersion
	}{
		{"absent is version 1", `{}`, FormatVersion{Major: 1}},
		{"bare integer", `{"version": 2}`, FormatVersion{Major: 2}},
		{"object without major defaults to 2", `{"version": {"minor": 7}}`, FormatVersion{Major: 2, Minor: 7}},
		{"full object", `{"version": {"major": 1, "minor": 2, "patch": 3, "build": 4}}`, FormatVersion{Major: 1, Minor: 2, Patch: 3, Build: 4}},
		{"fractional major truncates", `{"version": 2.9}`, FormatVersion{Major: 2}},
		{"boolean major", `{"version": true}`, FormatVersion{Major: 1}},
		{"enveloped object", `{"system": {"version": {"major": 2}}}`, FormatVersion{Major: 2}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record, err := Decode(test.document)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if record.Version != test.want {
				t.Errorf("Version = %+v, want %+v", record.Version, test.want)
			}
		})
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	for _, document := range []string{
		withVersion(`99`),
		withVersion(`{"major": 99}`),
		withVersion(`0`),
		withVersion(`{"major": 3}`),
		`{"version": false}`,
	} {
		record, err := Decode(document)
		if !IsKind(err, KindSchema) {
			t.Errorf("Decode error = %v, want schema error", err)
		}
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("error %v does not wrap ErrUnsupportedVersion", err)
		}
		if !reflect.DeepEqual(record, SystemRecord{}) {
			t.Errorf("record = %+v, want zero record", record)
		}
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	for _, document := range []string{``, `{`, `{"system": }`, `not json`, `{"a": 1,}`} {
		record, err := Decode(document)
		if !IsKind(err, KindSyntax) {
			t.Errorf("Decode(%q) error = %v, want syntax error", document, err)
		}
		if !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("Decode(%q) error does not wrap ErrInvalidJSON", document)
		}
		if !reflect.DeepEqual(record, SystemRecord{}) {
			t.Errorf("Decode(%q) record = %+v, want zero record", document, record)
		}
	}
}

func TestDecodeFieldTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantPath string
	}{
		{"string core count", `{"cpus": [{"numLogicalCores": "32"}]}`, "cpus[0].numLogicalCores"},
		{"numeric hostname", `{"os": {"hostname": 7}}`, "os.hostname"},
		{"numeric closed-source flag", `{"driver": {"isClosedSource": 1}}`, "driver.isClosedSource"},
		{"null gpu index", `{"gpus": [{"asic": {"gpuIndex": null}}]}`, "gpus[0].asic.gpuIndex"},
		{"string version", `{"version": "2"}`, "version"},
		{"string version major", `{"version": {"major": "2"}}`, "version.major"},
		{"process id string", `{"version": 2, "processes": [{"processId": "12"}]}`, "processes[0].processId"},
		{"heaps array of objects", `{"gpus": [{"memory": {"heaps": [{"size": 1}]}}]}`, "gpus[0].memory.heaps"},
		{"enveloped path is relative", `{"system": {"os": {"name": false}}}`, "os.name"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record, err := Decode(test.document)
			if !IsKind(err, KindField) {
				t.Fatalf("Decode error = %v, want field error", err)
			}
			var fieldError *FieldError
			if !errors.As(err, &fieldError) {
				t.Fatalf("error %v does not wrap *FieldError", err)
			}
			if fieldError.Path != test.wantPath {
				t.Errorf("Path = %q, want %q", fieldError.Path, test.wantPath)
			}
			if !reflect.DeepEqual(record, SystemRecord{}) {
				t.Errorf("record = %+v, want zero record", record)
			}
		})
	}
}

func TestDecodeAbsentSectionsStayZero(t *testing.T) {
	record, err := Decode(`{"version": 1, "gpus": [{"name": "bare"}]}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if record.Driver != (DriverInfo{}) || record.OS != (OSInfo{}) || record.DevDriver != (DevDriverInfo{}) {
		t.Errorf("absent sections not zero: %+v", record)
	}
	if record.CPUs != nil {
		t.Errorf("CPUs = %+v, want nil", record.CPUs)
	}
	if len(record.GPUs) != 1 {
		t.Fatalf("len(GPUs) = %d, want 1", len(record.GPUs))
	}
	// Without an asic section the index keeps the zero value; the
	// unknown sentinel applies only inside a present asic section.
	if record.GPUs[0].ASIC.GPUIndex != 0 {
		t.Errorf("GPUIndex = %#x, want 0", record.GPUs[0].ASIC.GPUIndex)
	}
}

func TestDecodeGPUIndexDefault(t *testing.T) {
	record, err := Decode(`{"gpus": [{"asic": {"numCus": 4}}]}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := record.GPUs[0].ASIC.GPUIndex; got != UnknownGPUIndex {
		t.Errorf("GPUIndex = %#x, want %#x", got, UnknownGPUIndex)
	}
}

func TestDecodeSoftFailures(t *testing.T) {
	record, err := Decode(`{
		"driver": {"packagingVersion": "23"},
		"gpus": [{"asic": {"cuMask": [[1, 2], [3, "x"]], "ids": {"luid": "xyz"}}}]
	}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if record.Driver.PackagingVersion != "23" {
		t.Errorf("PackagingVersion = %q", record.Driver.PackagingVersion)
	}
	if record.Driver.PackagingVersionMajor != 0 || record.Driver.PackagingVersionMinor != 0 {
		t.Errorf("derived packaging version = (%d, %d), want (0, 0)",
			record.Driver.PackagingVersionMajor, record.Driver.PackagingVersionMinor)
	}
	asic := record.GPUs[0].ASIC
	if len(asic.CUMask) != 0 {
		t.Errorf("CUMask = %v, want empty", asic.CUMask)
	}
	if asic.IDs.LUID != ([8]byte{}) {
		t.Errorf("LUID = %v, want zeros", asic.IDs.LUID)
	}
}

func TestDecodeHeapOrder(t *testing.T) {
	record, err := Decode(`{"gpus": [{"memory": {"heaps": {
		"local": {"size": 1},
		"invisible": {"size": 2},
		"host": {"size": 3}
	}}}]}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var types []string
	for _, heap := range record.GPUs[0].Memory.Heaps {
		types = append(types, heap.HeapType)
	}
	if want := []string{"local", "invisible", "host"}; !reflect.DeepEqual(types, want) {
		t.Errorf("heap order = %v, want %v", types, want)
	}
}

func TestDecodeListShapes(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{"array", `{"cpus": [{"name": "a"}, {"name": "b"}]}`, []string{"a", "b"}},
		{"object values in order", `{"cpus": {"x": {"name": "b"}, "y": {"name": "a"}}}`, []string{"b", "a"}},
		{"null", `{"cpus": null}`, nil},
		{"scalar yields one default entry", `{"cpus": 5}`, []string{""}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record, err := Decode(test.document)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			var names []string
			for _, cpu := range record.CPUs {
				names = append(names, cpu.Name)
			}
			if !reflect.DeepEqual(names, test.want) {
				t.Errorf("cpu names = %v, want %v", names, test.want)
			}
		})
	}
}

func TestDecodeTopLevelNonObject(t *testing.T) {
	for _, document := range []string{`5`, `"text"`, `[1, 2]`, `null`} {
		record, err := Decode(document)
		if err != nil {
			t.Errorf("Decode(%s): %v", document, err)
			continue
		}
		if !reflect.DeepEqual(record, SystemRecord{Version: FormatVersion{Major: 1}}) {
			t.Errorf("Decode(%s) = %+v, want empty version 1 record", document, record)
		}
	}
}

func TestDecodeBytes(t *testing.T) {
	record, err := DecodeBytes([]byte(systemV1))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if record.OS.Hostname != "render-07" {
		t.Errorf("Hostname = %q", record.OS.Hostname)
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object unchanged", `{ "version": 1, "os": {} }`, `{ "version": 1, "os": {} }`},
		{"envelope stripped", `{"system": { "version": 2,  "cpus": [ ] }, "other": 1}`, `{"version":2,"cpus":[]}`},
		{"member order kept", `{"system": {"z": 1, "a": 2}}`, `{"z":1,"a":2}`},
		{"scalar system member", `{"system": 7}`, `7`},
		{"invalid", `{"system": `, ``},
		{"top-level array unchanged", `[1, 2]`, `[1, 2]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Unwrap(test.input); got != test.want {
				t.Errorf("Unwrap(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestUnwrapThenDecode(t *testing.T) {
	inner := Unwrap(`{"system": ` + withProcesses(withVersion(`{"major": 2}`)) + `}`)
	record, err := Decode(inner)
	if err != nil {
		t.Fatalf("Decode(Unwrap): %v", err)
	}
	if len(record.Processes) != 2 {
		t.Errorf("len(Processes) = %d, want 2", len(record.Processes))
	}
	if record.OS.Hostname != "render-07" {
		t.Errorf("Hostname = %q", record.OS.Hostname)
	}
}
