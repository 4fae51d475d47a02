// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/driveroverrides"
	"github.com/spf13/pflag"
)

func overridesCommand(app *App) *cli.Command {
	var chunkVersion uint32

	return &cli.Command{
		Name:    "overrides",
		Summary: "Print the driver settings a user has overridden",
		Description: `Filter a driver overrides document down to the settings whose
user override is marked modified, grouped by component and structure.

The input is a chunk file holding a DriverOverrides chunk, or the
overrides document itself. A bare document carries no chunk version,
so --chunk-version names the layout it follows.`,
		Usage: "sysinfo overrides [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
			flagSet.Uint32Var(&chunkVersion, "chunk-version", driveroverrides.ChunkVersion, "layout version of a bare overrides document")
			return flagSet
		},
		Run: func(args []string) error {
			in, err := app.readInput(args, false)
			if err != nil {
				return err
			}

			var text string
			if in.isChunkFile() {
				defer in.chunks.Close()
				if !driveroverrides.IsChunkPresent(in.chunks) {
					return fmt.Errorf("%s: no %s chunk", in.name, driveroverrides.ChunkIdentifier)
				}
				text, err = driveroverrides.ParseChunk(in.chunks)
			} else {
				text, err = driveroverrides.Parse(string(in.document), chunkVersion)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			return app.writeJSON([]byte(text))
		},
	}
}
