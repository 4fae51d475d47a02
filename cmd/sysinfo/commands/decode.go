// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
	"github.com/spf13/pflag"
)

type decodeParams struct {
	format string
	chunk  bool
	quiet  bool
}

func decodeCommand(app *App) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a system info document into a record",
		Description: `Decode a system info document and print the resulting record.

The input is a JSON document, either the full {"system": {...}} form or
the bare system object, or a chunk file holding a SystemInfo chunk.
Chunk files are recognised by their magic bytes; --chunk makes any
other input an error.

Documents with a major version of 1 or 2 are decoded against the
matching schema. Anything else fails with a schema error and exit
status 1.`,
		Usage: "sysinfo decode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVarP(&params.format, "format", "f", app.Config.Output.Format, "output format: json, cbor, diag, or summary")
			flagSet.BoolVar(&params.chunk, "chunk", false, "require the input to be a chunk file")
			flagSet.BoolVarP(&params.quiet, "quiet", "q", false, "print nothing; report validity through the exit status")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Decode a captured document",
				Command:     "sysinfo decode capture.json",
			},
			{
				Description: "Inspect the CBOR encoding of the record",
				Command:     "sysinfo decode --format diag capture.chunk",
			},
			{
				Description: "Check a document in a script",
				Command:     "sysinfo decode -q capture.json && echo valid",
			},
		},
		Run: func(args []string) error {
			if err := validateFormat(params.format); err != nil {
				return err
			}
			record, err := app.decodeInput(args, params.chunk)
			if err != nil {
				if params.quiet {
					app.Logger.Debug("decode failed", "error", err)
					return &cli.ExitError{Code: cli.ExitFailure}
				}
				return err
			}
			if params.quiet {
				return nil
			}
			return app.writeRecord(record, params.format)
		},
	}
}

// decodeInput reads and decodes the input named by args.
func (app *App) decodeInput(args []string, forceChunk bool) (sysinfo.SystemRecord, error) {
	in, err := app.readInput(args, forceChunk)
	if err != nil {
		return sysinfo.SystemRecord{}, err
	}

	var record sysinfo.SystemRecord
	if in.isChunkFile() {
		defer in.chunks.Close()
		record, err = sysinfo.DecodeChunk(in.chunks)
	} else {
		record, err = sysinfo.DecodeBytes(in.document)
	}
	if err != nil {
		return sysinfo.SystemRecord{}, fmt.Errorf("decoding %s: %w", in.name, err)
	}

	app.Logger.Debug("decoded system info",
		"input", in.name,
		"version", fmt.Sprintf("%d.%d.%d.%d", record.Version.Major, record.Version.Minor, record.Version.Patch, record.Version.Build),
		"cpus", len(record.CPUs),
		"gpus", len(record.GPUs),
	)
	return record, nil
}
