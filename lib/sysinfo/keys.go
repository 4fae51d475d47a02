// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

// Document keys. These strings are the wire schema shared with every
// producer of system info documents and must not change.
const (
	keySystem  = "system"
	keyVersion = "version"
	keyMajor   = "major"
	keyMinor   = "minor"
	keyPatch   = "patch"
	keyBuild   = "build"
	keyMisc    = "misc"
	keyName    = "name"
	keyMin     = "min"
	keyMax     = "max"
	keySize    = "size"
	keyType    = "type"
	keyDevice  = "device"

	keyDevDriver = "devdriver"
	keyTag       = "tag"

	keyDriver           = "driver"
	keyDescription      = "description"
	keySoftwareVersion  = "softwareVersion"
	keyPackagingVersion = "packagingVersion"
	keyIsClosedSource   = "isClosedSource"

	keyOS                       = "os"
	keyHostname                 = "hostname"
	keyMemory                   = "memory"
	keyPhysical                 = "physical"
	keySwap                     = "swap"
	keyConfig                   = "config"
	keyLinux                    = "linux"
	keyPowerDPMWritable         = "powerDpmWritable"
	keyDRM                      = "drm"
	keyWindows                  = "windows"
	keyETWSupport               = "etwSupport"
	keyIsSupported              = "isSupported"
	keyHasPermission            = "hasPermission"
	keyStatusCode               = "statusCode"
	keyNeedsRegistryOrUserGroup = "needsRegistryOrUserGroup"

	keyCPUs             = "cpus"
	keyArchitecture     = "architecture"
	keyCPUID            = "cpuId"
	keyDeviceID         = "deviceId"
	keyVendorID         = "vendorId"
	keyVirtualization   = "virtualization"
	keyNumPhysicalCores = "numPhysicalCores"
	keyNumLogicalCores  = "numLogicalCores"
	keySpeed            = "speed"
	keyCPUTimeClockFreq = "cpuTimeClockFreq"

	keyGPUs                     = "gpus"
	keyPCI                      = "pci"
	keyBus                      = "bus"
	keyFunction                 = "function"
	keyASIC                     = "asic"
	keyGPUIndex                 = "gpuIndex"
	keyGPUCounterFreq           = "gpuCounterFreq"
	keyNumShaderEngines         = "numShaderEngines"
	keyNumShaderArraysPerEngine = "numShaderArraysPerEngine"
	keyNumCUs                   = "numCus"
	keyCUMask                   = "cuMask"
	keyEngineClockHz            = "engineClockHz"
	keyIDs                      = "ids"
	keyGFXEngine                = "gfxEngine"
	keyFamily                   = "family"
	keyERev                     = "eRev"
	keyRevision                 = "revision"
	keySubsystem                = "subsystem"
	keyVendor                   = "vendor"
	keyLUID                     = "luid"
	keyMemOpsPerClock           = "memOpsPerClock"
	keyBusBitWidth              = "busBitWidth"
	keyBandwidth                = "bandwidthBytesPerSec"
	keyMemClockHz               = "memClockHz"
	keyHeaps                    = "heaps"
	keyPhysicalAddress          = "physicalAddress"
	keyExcludedVARanges         = "excludedVaRanges"
	keyBase                     = "base"
	keyBigSW                    = "bigSw"

	keyProcesses = "processes"
	keyPath      = "path"
	keyProcessID = "processId"
)
