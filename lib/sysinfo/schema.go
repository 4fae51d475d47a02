// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import "fmt"

// Schema identifies a document schema revision and the population
// strategy that decodes it.
type Schema uint32

const (
	// SchemaV1 is the original document layout.
	SchemaV1 Schema = 1

	// SchemaV2 adds the processes list.
	SchemaV2 Schema = 2
)

// LatestSchema is the newest revision this package decodes.
const LatestSchema = SchemaV2

// SelectSchema returns the schema revision for a document's major
// version. Majors without a population strategy report false.
func SelectSchema(major uint32) (Schema, bool) {
	switch Schema(major) {
	case SchemaV1, SchemaV2:
		return Schema(major), true
	default:
		return 0, false
	}
}

// populate fills record from the system object. Each revision runs the
// previous revision's population before adding its own fields.
func (schema Schema) populate(system Node, record *SystemRecord) error {
	switch schema {
	case SchemaV1:
		return populateV1(system, record)
	case SchemaV2:
		return populateV2(system, record)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, uint32(schema))
	}
}

func (schema Schema) String() string {
	return fmt.Sprintf("v%d", uint32(schema))
}

// resolveVersion reads the system object's format version. The object
// form defaults a missing major to 2; a bare integer is the major of a
// legacy document and an absent field means version 1.
func resolveVersion(system Node) (FormatVersion, error) {
	versionNode := system.Child(keyVersion)
	if versionNode.IsObject() {
		reader := &fieldReader{}
		version := FormatVersion{
			Major: reader.uint32(versionNode, keyMajor, 2),
			Minor: reader.uint32(versionNode, keyMinor, 0),
			Patch: reader.uint32(versionNode, keyPatch, 0),
			Build: reader.uint32(versionNode, keyBuild, 0),
		}
		return version, reader.err
	}
	major, err := system.Uint32(keyVersion, 1)
	return FormatVersion{Major: major}, err
}
