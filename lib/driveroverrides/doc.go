// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package driveroverrides reads the driver overrides document stored
// alongside system info in capture files. The document lists every
// driver setting (or, for experiment captures, every driver
// experiment) together with the value the user forced, if any.
//
// The reader keeps only what the user changed: a setting survives when
// its UserOverride object carries a Value. Survivors stay under their
// component, settings of one structure are grouped together in order
// of the structure's first appearance, settings without a structure
// are filed under "Misc.", and components left with no settings are
// dropped.
//
// The document shape, using the wire keys:
//
//	{
//	  "IsDriverExperiments": false,
//	  "Components": [
//	    {
//	      "Component": "DX12",
//	      "Structures": [
//	        {
//	          "Structure": "Shader",
//	          "SettingName": "WaveSize",
//	          "Description": "Forced wave size",
//	          "Supported": true,
//	          "Current": 64,
//	          "UserOverride": {"Value": 32}
//	        }
//	      ]
//	    }
//	  ]
//	}
//
// Chunk versions 2 and 3 are understood. Version 2 predates driver
// experiments, so IsDriverExperiments is always false for it.
package driveroverrides
