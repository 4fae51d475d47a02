// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

// UnknownGPUIndex is the GPUIndex of a GPU whose asic section does not
// report an enumeration index.
const UnknownGPUIndex uint32 = 0xFFFFFFFF

// SystemRecord is the decoded system description. Every section is
// optional in the source document and stays at its zero value when
// absent.
type SystemRecord struct {
	// Version is the schema revision the document was decoded with.
	Version FormatVersion `json:"version"`

	// Driver describes the graphics driver package.
	Driver DriverInfo `json:"driver"`

	// DevDriver describes the developer-mode driver interface.
	DevDriver DevDriverInfo `json:"devdriver"`

	// OS describes the operating system and its configuration.
	OS OSInfo `json:"os"`

	// CPUs has one entry per physical CPU package, in document order.
	CPUs []CPUInfo `json:"cpus"`

	// GPUs has one entry per GPU device, in document order.
	GPUs []GPUInfo `json:"gpus"`

	// Processes lists the processes running when the document was
	// produced. Only schema revision 2 and later carry it.
	Processes []Process `json:"processes,omitempty"`
}

// FormatVersion is the document's schema revision. Major selects the
// population strategy; the other parts are informational.
type FormatVersion struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
	Patch uint32 `json:"patch"`
	Build uint32 `json:"build"`
}

// DriverInfo describes the installed graphics driver.
type DriverInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// SoftwareVersion is the driver's internal version string.
	SoftwareVersion string `json:"software_version"`

	// PackagingVersion is the user-facing release version
	// (e.g., "23.40.12").
	PackagingVersion string `json:"packaging_version"`

	IsClosedSource bool `json:"is_closed_source"`

	// PackagingVersionMajor and PackagingVersionMinor are derived
	// from PackagingVersion by ParsePackagingVersion. Zero when the
	// string lacks the dotted structure.
	PackagingVersionMajor uint32 `json:"packaging_version_major"`
	PackagingVersionMinor uint32 `json:"packaging_version_minor"`
}

// DevDriverInfo describes the developer-mode driver interface.
type DevDriverInfo struct {
	MajorVersion uint32 `json:"major_version"`
	Tag          string `json:"tag"`
}

// OSInfo describes the operating system.
type OSInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Hostname    string       `json:"hostname"`
	Memory      OSMemoryInfo `json:"memory"`
	Config      ConfigInfo   `json:"config"`
}

// OSMemoryInfo is system memory as seen by the operating system.
type OSMemoryInfo struct {
	// Physical is the installed physical memory in bytes.
	Physical uint64 `json:"physical"`

	// Swap is the configured swap space in bytes.
	Swap uint64 `json:"swap"`

	// Type is the memory technology label (e.g., "DDR5"). Read from
	// the memory section's "name" key.
	Type string `json:"type"`
}

// ConfigInfo is platform-specific operating system configuration. A
// document carries either the Linux fields or the Windows ETW fields.
type ConfigInfo struct {
	// PowerDPMWritable reports whether the amdgpu power_dpm_force_
	// performance_level sysfs file is writable (Linux).
	PowerDPMWritable bool `json:"power_dpm_writable"`

	// DRMMajorVersion and DRMMinorVersion are the kernel DRM
	// interface version (Linux).
	DRMMajorVersion uint32 `json:"drm_major_version"`
	DRMMinorVersion uint32 `json:"drm_minor_version"`

	// ETW is Event Tracing for Windows support (Windows).
	ETW ETWSupportInfo `json:"etw"`
}

// ETWSupportInfo describes Event Tracing for Windows availability.
type ETWSupportInfo struct {
	IsSupported   bool   `json:"is_supported"`
	HasPermission bool   `json:"has_permission"`
	StatusCode    uint32 `json:"status_code"`

	// NeedsRegistryOrUserGroup is set when tracing requires a
	// registry change or membership in the performance log users
	// group.
	NeedsRegistryOrUserGroup bool `json:"needs_registry_or_user_group"`
}

// CPUInfo describes one physical CPU package.
type CPUInfo struct {
	Name         string `json:"name"`
	Architecture string `json:"architecture"`

	// CPUID is the processor identification string reported by the
	// CPUID instruction.
	CPUID string `json:"cpu_id"`

	// DeviceID is the socket or slot identifier.
	DeviceID string `json:"device_id"`

	// VendorID is the vendor string (e.g., "AuthenticAMD").
	VendorID string `json:"vendor_id"`

	// Virtualization describes the virtualization state (e.g.,
	// "AMD-V", "none").
	Virtualization string `json:"virtualization"`

	NumPhysicalCores uint32 `json:"num_physical_cores"`
	NumLogicalCores  uint32 `json:"num_logical_cores"`

	// MaxClockSpeed is the maximum clock speed in MHz.
	MaxClockSpeed uint32 `json:"max_clock_speed"`

	// TimestampClockFrequency is the timestamp counter frequency in Hz.
	TimestampClockFrequency uint64 `json:"timestamp_clock_frequency"`
}

// GPUInfo describes one GPU device.
type GPUInfo struct {
	Name   string     `json:"name"`
	PCI    PCIInfo    `json:"pci"`
	ASIC   ASICInfo   `json:"asic"`
	Memory MemoryInfo `json:"memory"`

	// BigSW is the vendor co-release version tag.
	BigSW SoftwareVersion `json:"big_sw"`
}

// PCIInfo is a PCI bus location.
type PCIInfo struct {
	Bus      uint32 `json:"bus"`
	Device   uint32 `json:"device"`
	Function uint32 `json:"function"`
}

// ClockInfo is a clock frequency range in Hz.
type ClockInfo struct {
	Min uint64 `json:"min"`
	Max uint64 `json:"max"`
}

// ASICInfo describes the GPU chip.
type ASICInfo struct {
	// GPUIndex is the driver's enumeration index for this GPU.
	// UnknownGPUIndex when the asic section omits it.
	GPUIndex uint32 `json:"gpu_index"`

	// GPUCounterFrequency is the GPU timestamp counter frequency in Hz.
	GPUCounterFrequency uint64 `json:"gpu_counter_frequency"`

	EngineClock ClockInfo `json:"engine_clock"`

	NumShaderEngines         uint32 `json:"num_shader_engines"`
	NumShaderArraysPerEngine uint32 `json:"num_shader_arrays_per_engine"`

	// NumCUs is the total compute unit count.
	NumCUs uint32 `json:"num_cus"`

	// CUMask holds the active compute units, indexed by shader engine
	// then shader array. Empty when the document's mask is missing or
	// malformed.
	CUMask CUMask `json:"cu_mask"`

	IDs IDInfo `json:"ids"`
}

// CUMask is a compute unit activity bitmask per shader array, grouped
// by shader engine.
type CUMask [][]uint32

// IDInfo holds the hardware identifiers of a GPU.
type IDInfo struct {
	GFXEngine uint32 `json:"gfx_engine"`
	Family    uint32 `json:"family"`
	ERev      uint32 `json:"e_rev"`

	// Revision, Device, Subsystem and Vendor are PCI identifiers.
	Revision  uint32 `json:"revision"`
	Device    uint32 `json:"device"`
	Subsystem uint32 `json:"subsystem"`
	Vendor    uint32 `json:"vendor"`

	// LUID is the Windows locally unique adapter identifier. All
	// zero when absent.
	LUID [8]byte `json:"luid"`
}

// MemoryInfo describes a GPU's local memory.
type MemoryInfo struct {
	Type           string `json:"type"`
	MemOpsPerClock uint32 `json:"mem_ops_per_clock"`
	BusBitWidth    uint32 `json:"bus_bit_width"`

	// Bandwidth is the peak bandwidth in bytes per second.
	Bandwidth uint64 `json:"bandwidth"`

	MemoryClock ClockInfo `json:"memory_clock"`

	// Heaps lists the memory heaps in document order.
	Heaps []HeapInfo `json:"heaps"`

	// ExcludedVARanges lists virtual address ranges reserved by the
	// driver.
	ExcludedVARanges []ExcludedRangeInfo `json:"excluded_va_ranges"`
}

// HeapInfo describes one memory heap.
type HeapInfo struct {
	// HeapType is the heap's key in the document (e.g., "local",
	// "invisible").
	HeapType        string `json:"heap_type"`
	PhysicalAddress uint64 `json:"physical_address"`
	Size            uint64 `json:"size"`
}

// ExcludedRangeInfo is a reserved virtual address range.
type ExcludedRangeInfo struct {
	Base uint64 `json:"base"`
	Size uint64 `json:"size"`
}

// SoftwareVersion is a three-part version number.
type SoftwareVersion struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
	Misc  uint32 `json:"misc"`
}

// Process is a process that was running when the document was
// produced.
type Process struct {
	Name string `json:"name"`
	Path string `json:"path"`
	ID   uint32 `json:"id"`
}
