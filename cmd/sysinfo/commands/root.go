// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
)

// Root returns the sysinfo command tree bound to app.
func Root(app *App) *cli.Command {
	return &cli.Command{
		Name:    "sysinfo",
		Summary: "Decode and inspect system info documents",
		Description: `Decode and inspect system info documents.

A system info document is JSON describing a machine: OS, driver, CPUs,
GPUs, and optionally the processes running when it was captured. It is
stored either as a plain file or as the SystemInfo chunk of a chunk
file, next to an optional DriverOverrides chunk.

Global flags (--config, --log-level, --version) go before the command.`,
		Subcommands: []*cli.Command{
			decodeCommand(app),
			unwrapCommand(app),
			summaryCommand(app),
			packCommand(app),
			chunksCommand(app),
			overridesCommand(app),
		},
		Examples: []cli.Example{
			{
				Description: "Decode a capture to JSON",
				Command:     "sysinfo decode capture.json",
			},
			{
				Description: "Summarise a chunk file",
				Command:     "sysinfo summary capture.chunk",
			},
			{
				Description: "Use a config file",
				Command:     "sysinfo --config sysinfo.yaml decode capture.json",
			},
		},
	}
}
