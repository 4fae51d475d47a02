// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/chunkfile"
	"github.com/spf13/pflag"
)

// chunkListing is the --json form of one index entry.
type chunkListing struct {
	Identifier  string `json:"identifier"`
	Instance    uint32 `json:"instance"`
	Version     uint32 `json:"version"`
	Compression string `json:"compression"`
	StoredSize  uint64 `json:"stored_size"`
	DataSize    uint64 `json:"data_size"`
	Hash        string `json:"hash"`
}

func chunksCommand(app *App) *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "chunks",
		Summary: "List the chunks of a chunk file",
		Description: `List every chunk in a chunk file's index: identifier, instance,
version, compression, stored and decompressed sizes, and data hash.`,
		Usage: "sysinfo chunks [flags] [file.chunk]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("chunks", pflag.ContinueOnError)
			flagSet.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			in, err := app.readInput(args, true)
			if err != nil {
				return err
			}
			defer in.chunks.Close()

			entries := in.chunks.Chunks()
			if outputJSON {
				listings := make([]chunkListing, 0, len(entries))
				for _, entry := range entries {
					listings = append(listings, chunkListing{
						Identifier:  entry.Identifier,
						Instance:    entry.Instance,
						Version:     entry.Version,
						Compression: entry.Compression.String(),
						StoredSize:  entry.StoredSize,
						DataSize:    entry.DataSize,
						Hash:        entry.Hash.String(),
					})
				}
				data, err := json.Marshal(listings)
				if err != nil {
					return fmt.Errorf("encoding listing: %w", err)
				}
				return app.writeJSON(data)
			}

			return writeChunkTable(app, entries)
		},
	}
}

func writeChunkTable(app *App, entries []chunkfile.Entry) error {
	tw := tabwriter.NewWriter(app.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "IDENTIFIER\tINSTANCE\tVERSION\tCOMPRESSION\tSTORED\tSIZE\tHASH\n")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			entry.Identifier,
			entry.Instance,
			entry.Version,
			entry.Compression,
			formatBytes(entry.StoredSize),
			formatBytes(entry.DataSize),
			entry.Hash.Short(),
		)
	}
	return tw.Flush()
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(bytes uint64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
