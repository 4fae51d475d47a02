// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

// fieldReader wraps the Node getters with a sticky error so population
// code reads as a flat list of assignments. After the first failure
// every getter returns its fallback and the failure is reported once
// by err.
type fieldReader struct {
	err error
}

func (reader *fieldReader) uint32(node Node, name string, fallback uint32) uint32 {
	if reader.err != nil {
		return fallback
	}
	value, err := node.Uint32(name, fallback)
	if err != nil {
		reader.err = err
	}
	return value
}

func (reader *fieldReader) uint64(node Node, name string, fallback uint64) uint64 {
	if reader.err != nil {
		return fallback
	}
	value, err := node.Uint64(name, fallback)
	if err != nil {
		reader.err = err
	}
	return value
}

func (reader *fieldReader) string(node Node, name, fallback string) string {
	if reader.err != nil {
		return fallback
	}
	value, err := node.String(name, fallback)
	if err != nil {
		reader.err = err
	}
	return value
}

func (reader *fieldReader) bool(node Node, name string, fallback bool) bool {
	if reader.err != nil {
		return fallback
	}
	value, err := node.Bool(name, fallback)
	if err != nil {
		reader.err = err
	}
	return value
}

// each visits the elements of node (see Node.Each) until the reader
// has failed.
func (reader *fieldReader) each(node Node, fn func(Node)) {
	if reader.err != nil {
		return
	}
	_ = node.Each(func(element Node) error {
		fn(element)
		return reader.err
	})
}

// entries visits the members of an object node, passing each member's
// key. Null and empty arrays have no members; any other non-object is
// a *FieldError since its elements have no keys.
func (reader *fieldReader) entries(node Node, fn func(key string, value Node)) {
	if reader.err != nil {
		return
	}
	switch {
	case node.IsObject():
	case node.IsNull():
		return
	case node.IsArray() && len(node.value.Array()) == 0:
		return
	default:
		reader.err = node.typeError("object")
		return
	}
	_ = node.Each(func(element Node) error {
		fn(element.Key(), element)
		return reader.err
	})
}

// populateV1 fills the sections every schema revision carries. Each
// section is read only when present.
func populateV1(system Node, record *SystemRecord) error {
	reader := &fieldReader{}

	if system.Has(keyDevDriver) {
		populateDevDriver(reader, system.Child(keyDevDriver), &record.DevDriver)
	}
	if system.Has(keyDriver) {
		populateDriver(reader, system.Child(keyDriver), &record.Driver)
	}
	if system.Has(keyOS) {
		populateOS(reader, system.Child(keyOS), &record.OS)
	}
	if system.Has(keyCPUs) {
		record.CPUs = populateCPUs(reader, system.Child(keyCPUs))
	}
	if system.Has(keyGPUs) {
		record.GPUs = populateGPUs(reader, system.Child(keyGPUs))
	}
	return reader.err
}

// populateV2 adds the process list to the V1 sections. It never
// touches a field populateV1 owns.
func populateV2(system Node, record *SystemRecord) error {
	if err := populateV1(system, record); err != nil {
		return err
	}
	if !system.Has(keyProcesses) {
		return nil
	}
	reader := &fieldReader{}
	record.Processes = populateProcesses(reader, system.Child(keyProcesses))
	return reader.err
}

func populateDevDriver(reader *fieldReader, node Node, info *DevDriverInfo) {
	if node.Has(keyVersion) {
		info.MajorVersion = reader.uint32(node.Child(keyVersion), keyMajor, 0)
	}
	info.Tag = reader.string(node, keyTag, "")
}

func populateDriver(reader *fieldReader, node Node, info *DriverInfo) {
	info.Name = reader.string(node, keyName, "")
	info.Description = reader.string(node, keyDescription, "")
	info.SoftwareVersion = reader.string(node, keySoftwareVersion, "")
	info.PackagingVersion = reader.string(node, keyPackagingVersion, "")
	info.IsClosedSource = reader.bool(node, keyIsClosedSource, false)
	info.PackagingVersionMajor, info.PackagingVersionMinor = ParsePackagingVersion(info.PackagingVersion)
}

func populateOS(reader *fieldReader, node Node, info *OSInfo) {
	info.Name = reader.string(node, keyName, "")
	info.Description = reader.string(node, keyDescription, "")
	info.Hostname = reader.string(node, keyHostname, "")

	if node.Has(keyMemory) {
		memory := node.Child(keyMemory)
		info.Memory.Physical = reader.uint64(memory, keyPhysical, 0)
		info.Memory.Swap = reader.uint64(memory, keySwap, 0)
		info.Memory.Type = reader.string(memory, keyName, "")
	}

	if !node.Has(keyConfig) {
		return
	}
	config := node.Child(keyConfig)

	if config.Has(keyLinux) {
		linux := config.Child(keyLinux)
		info.Config.PowerDPMWritable = reader.bool(linux, keyPowerDPMWritable, false)
		if linux.Has(keyDRM) {
			drm := linux.Child(keyDRM)
			info.Config.DRMMajorVersion = reader.uint32(drm, keyMajor, 0)
			info.Config.DRMMinorVersion = reader.uint32(drm, keyMinor, 0)
		}
	}

	if config.Has(keyWindows) {
		windows := config.Child(keyWindows)
		if windows.Has(keyETWSupport) {
			etw := windows.Child(keyETWSupport)
			info.Config.ETW.IsSupported = reader.bool(etw, keyIsSupported, false)
			info.Config.ETW.HasPermission = reader.bool(etw, keyHasPermission, false)
			info.Config.ETW.StatusCode = reader.uint32(etw, keyStatusCode, 0)
			info.Config.ETW.NeedsRegistryOrUserGroup = reader.bool(etw, keyNeedsRegistryOrUserGroup, false)
		}
	}
}

func populateCPUs(reader *fieldReader, node Node) []CPUInfo {
	var cpus []CPUInfo
	reader.each(node, func(element Node) {
		cpu := CPUInfo{
			Name:                    reader.string(element, keyName, ""),
			Architecture:            reader.string(element, keyArchitecture, ""),
			CPUID:                   reader.string(element, keyCPUID, ""),
			DeviceID:                reader.string(element, keyDeviceID, ""),
			VendorID:                reader.string(element, keyVendorID, ""),
			Virtualization:          reader.string(element, keyVirtualization, ""),
			NumLogicalCores:         reader.uint32(element, keyNumLogicalCores, 0),
			NumPhysicalCores:        reader.uint32(element, keyNumPhysicalCores, 0),
			TimestampClockFrequency: reader.uint64(element, keyCPUTimeClockFreq, 0),
		}
		if element.Has(keySpeed) {
			cpu.MaxClockSpeed = reader.uint32(element.Child(keySpeed), keyMax, 0)
		}
		cpus = append(cpus, cpu)
	})
	return cpus
}

func populateGPUs(reader *fieldReader, node Node) []GPUInfo {
	var gpus []GPUInfo
	reader.each(node, func(element Node) {
		gpu := GPUInfo{Name: reader.string(element, keyName, "")}
		if element.Has(keyPCI) {
			pci := element.Child(keyPCI)
			gpu.PCI = PCIInfo{
				Bus:      reader.uint32(pci, keyBus, 0),
				Device:   reader.uint32(pci, keyDevice, 0),
				Function: reader.uint32(pci, keyFunction, 0),
			}
		}
		if element.Has(keyASIC) {
			populateASIC(reader, element.Child(keyASIC), &gpu.ASIC)
		}
		if element.Has(keyMemory) {
			populateGPUMemory(reader, element.Child(keyMemory), &gpu.Memory)
		}
		if element.Has(keyBigSW) {
			bigSW := element.Child(keyBigSW)
			gpu.BigSW = SoftwareVersion{
				Major: reader.uint32(bigSW, keyMajor, 0),
				Minor: reader.uint32(bigSW, keyMinor, 0),
				Misc:  reader.uint32(bigSW, keyMisc, 0),
			}
		}
		gpus = append(gpus, gpu)
	})
	return gpus
}

func populateASIC(reader *fieldReader, node Node, info *ASICInfo) {
	info.GPUIndex = reader.uint32(node, keyGPUIndex, UnknownGPUIndex)
	info.GPUCounterFrequency = reader.uint64(node, keyGPUCounterFreq, 0)
	info.NumShaderEngines = reader.uint32(node, keyNumShaderEngines, 0)
	info.NumShaderArraysPerEngine = reader.uint32(node, keyNumShaderArraysPerEngine, 0)
	info.NumCUs = reader.uint32(node, keyNumCUs, 0)

	if node.Has(keyCUMask) {
		info.CUMask = parseCUMask(node.Child(keyCUMask))
	}
	if node.Has(keyEngineClockHz) {
		info.EngineClock = readClock(reader, node.Child(keyEngineClockHz))
	}
	if node.Has(keyIDs) {
		ids := node.Child(keyIDs)
		info.IDs = IDInfo{
			GFXEngine: reader.uint32(ids, keyGFXEngine, 0),
			Family:    reader.uint32(ids, keyFamily, 0),
			ERev:      reader.uint32(ids, keyERev, 0),
			Revision:  reader.uint32(ids, keyRevision, 0),
			Device:    reader.uint32(ids, keyDevice, 0),
			Subsystem: reader.uint32(ids, keySubsystem, 0),
			Vendor:    reader.uint32(ids, keyVendor, 0),
			LUID:      DecodeLUID(reader.string(ids, keyLUID, "")),
		}
	}
}

func populateGPUMemory(reader *fieldReader, node Node, info *MemoryInfo) {
	info.Type = reader.string(node, keyType, "")
	info.MemOpsPerClock = reader.uint32(node, keyMemOpsPerClock, 0)
	info.BusBitWidth = reader.uint32(node, keyBusBitWidth, 0)
	info.Bandwidth = reader.uint64(node, keyBandwidth, 0)

	if node.Has(keyMemClockHz) {
		info.MemoryClock = readClock(reader, node.Child(keyMemClockHz))
	}
	if node.Has(keyHeaps) {
		reader.entries(node.Child(keyHeaps), func(heapType string, heap Node) {
			info.Heaps = append(info.Heaps, HeapInfo{
				HeapType:        heapType,
				PhysicalAddress: reader.uint64(heap, keyPhysicalAddress, 0),
				Size:            reader.uint64(heap, keySize, 0),
			})
		})
	}
	if node.Has(keyExcludedVARanges) {
		reader.each(node.Child(keyExcludedVARanges), func(excluded Node) {
			info.ExcludedVARanges = append(info.ExcludedVARanges, ExcludedRangeInfo{
				Base: reader.uint64(excluded, keyBase, 0),
				Size: reader.uint64(excluded, keySize, 0),
			})
		})
	}
}

func readClock(reader *fieldReader, node Node) ClockInfo {
	return ClockInfo{
		Min: reader.uint64(node, keyMin, 0),
		Max: reader.uint64(node, keyMax, 0),
	}
}

func populateProcesses(reader *fieldReader, node Node) []Process {
	var processes []Process
	reader.each(node, func(element Node) {
		processes = append(processes, Process{
			Name: reader.string(element, keyName, ""),
			Path: reader.string(element, keyPath, ""),
			ID:   reader.uint32(element, keyProcessID, 0),
		})
	})
	return processes
}
