// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package driveroverrides

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
)

// Chunk constants shared with the producers of driver overrides.
const (
	ChunkIdentifier        = "DriverOverrides"
	ChunkVersion    uint32 = 3
	ChunkVersionMin uint32 = 2
	ChunkVersionMax        = ChunkVersion
)

// MiscStructure names the group for settings without a structure.
const MiscStructure = "Misc."

// Document keys.
const (
	keyIsDriverExperiments = "IsDriverExperiments"
	keyComponents          = "Components"
	keyComponent           = "Component"
	keyStructures          = "Structures"
	keyStructure           = "Structure"
	keySettingName         = "SettingName"
	keyCurrent             = "Current"
	keyValue               = "Value"
	keyUserOverride        = "UserOverride"
	keyDescription         = "Description"
	keySupported           = "Supported"
)

// ErrUnsupportedVersion is returned for document versions outside
// [ChunkVersionMin, ChunkVersionMax].
var ErrUnsupportedVersion = errors.New("driveroverrides: unsupported version")

// Overrides is the filtered driver overrides document.
type Overrides struct {
	IsDriverExperiments bool        `json:"IsDriverExperiments"`
	Components          []Component `json:"Components"`
}

// Component holds the user-modified settings of one driver component.
type Component struct {
	Component string `json:"Component"`

	// Structures holds the settings, grouped by Structure.
	Structures []Setting `json:"Structures"`
}

// Setting is one user-modified driver setting or experiment.
type Setting struct {
	Structure   string `json:"Structure"`
	SettingName string `json:"SettingName"`
	Description string `json:"Description,omitempty"`
	Supported   *bool  `json:"Supported,omitempty"`

	// Current is the driver's value, as raw JSON.
	Current json.RawMessage `json:"Current,omitempty"`

	// UserOverride is the override object, as raw JSON. It always has
	// a Value member.
	UserOverride json.RawMessage `json:"UserOverride"`
}

// Decode filters a driver overrides document of the given chunk
// version down to the settings the user modified.
func Decode(text string, version uint32) (Overrides, error) {
	if version < ChunkVersionMin || version > ChunkVersionMax {
		return Overrides{}, fmt.Errorf("%w: %d (supported %d through %d)",
			ErrUnsupportedVersion, version, ChunkVersionMin, ChunkVersionMax)
	}
	root, ok := sysinfo.ParseDocument(text)
	if !ok {
		return Overrides{}, fmt.Errorf("driveroverrides: %w", sysinfo.ErrInvalidJSON)
	}
	if !root.IsObject() {
		return Overrides{}, fmt.Errorf("driveroverrides: document is not an object")
	}

	var overrides Overrides
	if version >= 3 {
		experiments, err := root.Bool(keyIsDriverExperiments, false)
		if err != nil {
			return Overrides{}, fmt.Errorf("driveroverrides: %w", err)
		}
		overrides.IsDriverExperiments = experiments
	}

	components := root.Child(keyComponents)
	if components.Exists() && !components.IsNull() && !components.IsArray() {
		return Overrides{}, fmt.Errorf("driveroverrides: %s is not an array", keyComponents)
	}
	err := components.Each(func(node sysinfo.Node) error {
		component, err := decodeComponent(node)
		if err != nil {
			return err
		}
		if len(component.Structures) > 0 {
			overrides.Components = append(overrides.Components, component)
		}
		return nil
	})
	if err != nil {
		return Overrides{}, fmt.Errorf("driveroverrides: %w", err)
	}
	return overrides, nil
}

// Parse is Decode followed by serialisation: it returns the filtered
// document as compact JSON.
func Parse(text string, version uint32) (string, error) {
	overrides, err := Decode(text, version)
	if err != nil {
		return "", err
	}
	if overrides.Components == nil {
		overrides.Components = []Component{}
	}
	data, err := json.Marshal(overrides)
	if err != nil {
		return "", fmt.Errorf("driveroverrides: encoding result: %w", err)
	}
	return string(data), nil
}

func decodeComponent(node sysinfo.Node) (Component, error) {
	if !node.IsObject() {
		return Component{}, fmt.Errorf("%s: component is not an object", node.Path())
	}
	name, err := node.String(keyComponent, "")
	if err != nil {
		return Component{}, err
	}

	// Group settings by structure, keeping first-appearance order of
	// the structures and document order within each.
	var (
		order  []string
		groups = make(map[string][]Setting)
	)
	err = node.Child(keyStructures).Each(func(settingNode sysinfo.Node) error {
		setting, modified, err := decodeSetting(settingNode)
		if err != nil || !modified {
			return err
		}
		if _, seen := groups[setting.Structure]; !seen {
			order = append(order, setting.Structure)
		}
		groups[setting.Structure] = append(groups[setting.Structure], setting)
		return nil
	})
	if err != nil {
		return Component{}, err
	}

	component := Component{Component: name}
	for _, structure := range order {
		component.Structures = append(component.Structures, groups[structure]...)
	}
	return component, nil
}

// decodeSetting reads one setting and reports whether the user
// overrode it.
func decodeSetting(node sysinfo.Node) (Setting, bool, error) {
	if !node.IsObject() {
		return Setting{}, false, fmt.Errorf("%s: setting is not an object", node.Path())
	}
	override := node.Child(keyUserOverride)
	if !override.IsObject() || !override.Has(keyValue) {
		return Setting{}, false, nil
	}

	var (
		setting Setting
		err     error
	)
	if setting.Structure, err = node.String(keyStructure, ""); err != nil {
		return Setting{}, false, err
	}
	if setting.Structure == "" {
		setting.Structure = MiscStructure
	}
	if setting.SettingName, err = node.String(keySettingName, ""); err != nil {
		return Setting{}, false, err
	}
	if setting.Description, err = node.String(keyDescription, ""); err != nil {
		return Setting{}, false, err
	}
	if node.Has(keySupported) {
		supported, err := node.Bool(keySupported, false)
		if err != nil {
			return Setting{}, false, err
		}
		setting.Supported = &supported
	}
	if current := node.Child(keyCurrent); current.Exists() {
		setting.Current = compact(current.Raw())
	}
	setting.UserOverride = compact(override.Raw())
	return setting, true, nil
}

func compact(raw string) json.RawMessage {
	return json.RawMessage(pretty.Ugly([]byte(raw)))
}
