// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/config"
	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
)

func summaryCommand(app *App) *cli.Command {
	var chunk bool

	return &cli.Command{
		Name:    "summary",
		Summary: "Print a human-readable summary of a document",
		Description: `Decode a system info document and print a short human-readable
summary: host, driver, CPUs, GPUs, and captured processes.

Equivalent to "sysinfo decode --format summary".`,
		Usage: "sysinfo summary [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("summary", pflag.ContinueOnError)
			flagSet.BoolVar(&chunk, "chunk", false, "require the input to be a chunk file")
			return flagSet
		},
		Run: func(args []string) error {
			record, err := app.decodeInput(args, chunk)
			if err != nil {
				return err
			}
			return app.writeRecord(record, config.FormatSummary)
		},
	}
}

// summaryTheme holds the styles of the summary view.
type summaryTheme struct {
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	faint   lipgloss.Style
	card    lipgloss.Style
}

func newSummaryTheme(renderer *lipgloss.Renderer) summaryTheme {
	return summaryTheme{
		heading: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:   renderer.NewStyle().Width(10).Foreground(lipgloss.Color("245")),
		value:   renderer.NewStyle(),
		faint:   renderer.NewStyle().Faint(true),
		card: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// writeSummary renders record for a terminal reader.
func (app *App) writeSummary(record sysinfo.SystemRecord) error {
	profile := termenv.Ascii
	if app.colorEnabled() {
		profile = termenv.ANSI256
	}
	// SetColorProfile is needed because the renderer re-detects the
	// profile from the environment otherwise.
	renderer := lipgloss.NewRenderer(app.Stdout, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	_, err := io.WriteString(app.Stdout, renderSummary(record, newSummaryTheme(renderer))+"\n")
	return err
}

func renderSummary(record sysinfo.SystemRecord, theme summaryTheme) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, theme.label.Render(label), theme.value.Render(value))
	}

	version := record.Version
	sections := []string{
		theme.heading.Render(fmt.Sprintf("System info %d.%d.%d.%d (%s)",
			version.Major, version.Minor, version.Patch, version.Build, schemaName(version.Major))),
	}

	host := record.OS.Hostname
	if record.OS.Name != "" {
		host = strings.TrimSpace(host + " (" + record.OS.Name + ")")
	}
	sections = append(sections,
		row("Host", orNone(host)),
		row("Driver", orNone(driverLine(record.Driver))),
		row("Memory", fmt.Sprintf("%s physical, %s swap",
			formatBytes(record.OS.Memory.Physical), formatBytes(record.OS.Memory.Swap))),
	)

	sections = append(sections, "", theme.heading.Render(fmt.Sprintf("CPUs (%d)", len(record.CPUs))))
	for _, cpu := range record.CPUs {
		sections = append(sections, row("", fmt.Sprintf("%s  %d cores / %d threads  %d MHz",
			orNone(cpu.Name), cpu.NumPhysicalCores, cpu.NumLogicalCores, cpu.MaxClockSpeed)))
	}

	sections = append(sections, "", theme.heading.Render(fmt.Sprintf("GPUs (%d)", len(record.GPUs))))
	for index, gpu := range record.GPUs {
		sections = append(sections, theme.card.Render(gpuCard(index, gpu, theme, row)))
	}

	if len(record.Processes) > 0 {
		names := make([]string, 0, len(record.Processes))
		for _, process := range record.Processes {
			names = append(names, fmt.Sprintf("%s[%d]", process.Name, process.ID))
		}
		sections = append(sections, "",
			theme.heading.Render(fmt.Sprintf("Processes (%d)", len(record.Processes))),
			theme.faint.Render(strings.Join(names, " ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func gpuCard(index int, gpu sysinfo.GPUInfo, theme summaryTheme, row func(label, value string) string) string {
	var heapTotal uint64
	for _, heap := range gpu.Memory.Heaps {
		heapTotal += heap.Size
	}

	lines := []string{
		theme.heading.Render(fmt.Sprintf("[%d] %s", index, orNone(gpu.Name))),
		row("PCI", fmt.Sprintf("%02x:%02x.%x", gpu.PCI.Bus, gpu.PCI.Device, gpu.PCI.Function)),
		row("Device", fmt.Sprintf("%04x:%04x rev %02x", gpu.ASIC.IDs.Vendor, gpu.ASIC.IDs.Device, gpu.ASIC.IDs.Revision)),
		row("Compute", fmt.Sprintf("%d CUs, %d SEs", gpu.ASIC.NumCUs, gpu.ASIC.NumShaderEngines)),
		row("Clock", fmt.Sprintf("engine %d-%d, memory %d-%d",
			gpu.ASIC.EngineClock.Min, gpu.ASIC.EngineClock.Max,
			gpu.Memory.MemoryClock.Min, gpu.Memory.MemoryClock.Max)),
		row("Memory", fmt.Sprintf("%s, %d heaps, %s", orNone(gpu.Memory.Type), len(gpu.Memory.Heaps), formatBytes(heapTotal))),
	}
	if gpu.ASIC.GPUIndex != sysinfo.UnknownGPUIndex {
		lines = append(lines, row("Index", fmt.Sprintf("%d", gpu.ASIC.GPUIndex)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func driverLine(driver sysinfo.DriverInfo) string {
	parts := []string{}
	if driver.Name != "" {
		parts = append(parts, driver.Name)
	}
	if driver.SoftwareVersion != "" {
		parts = append(parts, driver.SoftwareVersion)
	}
	if driver.PackagingVersion != "" {
		parts = append(parts, fmt.Sprintf("packaging %d.%d", driver.PackagingVersionMajor, driver.PackagingVersionMinor))
	}
	return strings.Join(parts, " ")
}

func schemaName(major uint32) string {
	if schema, ok := sysinfo.SelectSchema(major); ok {
		return "schema " + schema.String()
	}
	return "unknown schema"
}

func orNone(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
