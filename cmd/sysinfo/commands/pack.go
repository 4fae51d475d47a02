// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/chunkfile"
	"github.com/bureau-foundation/sysinfo/lib/driveroverrides"
	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
	"github.com/spf13/pflag"
)

type packParams struct {
	out          string
	compression  string
	identifier   string
	chunkVersion uint32
	overrides    string
	noValidate   bool
}

func packCommand(app *App) *cli.Command {
	var params packParams

	return &cli.Command{
		Name:    "pack",
		Summary: "Write JSON documents into a chunk file",
		Description: `Store one or more JSON documents as chunks of a new chunk file.

Each document becomes one instance of the chunk identifier, in argument
order. SystemInfo documents are always decoded before packing so a
malformed capture is rejected here rather than by the reader. Driver
overrides documents are checked too unless --no-validate is given.
Documents under any other identifier are stored as read.

The output file is replaced atomically.`,
		Usage: "sysinfo pack --out FILE [flags] document.json [...]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("pack", pflag.ContinueOnError)
			flagSet.StringVarP(&params.out, "out", "o", "", "chunk file to write (required)")
			flagSet.StringVar(&params.compression, "compression", app.Config.Pack.Compression, "chunk compression: none, lz4, zstd, or auto")
			flagSet.StringVar(&params.identifier, "id", sysinfo.ChunkIdentifier, "chunk identifier for the documents")
			flagSet.Uint32Var(&params.chunkVersion, "chunk-version", 0, "chunk version to record (default: current version for the identifier)")
			flagSet.StringVar(&params.overrides, "overrides", "", "driver overrides document to add as a DriverOverrides chunk")
			flagSet.BoolVar(&params.noValidate, "no-validate", false, "store driver overrides without checking them first")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Pack a capture with zstd",
				Command:     "sysinfo pack -o capture.chunk --compression zstd capture.json",
			},
			{
				Description: "Pack a capture with its driver overrides",
				Command:     "sysinfo pack -o capture.chunk --overrides overrides.json capture.json",
			},
		},
		Run: func(args []string) error {
			if params.out == "" {
				return cli.Usagef("--out is required")
			}
			if len(args) == 0 && params.overrides == "" {
				return cli.Usagef("at least one document is required")
			}
			tag, err := chunkfile.ParseCompressionTag(params.compression)
			if err != nil {
				return &cli.UsageError{Err: err}
			}

			builder := chunkfile.NewBuilder()
			version := params.chunkVersion
			if version == 0 {
				version = defaultChunkVersion(params.identifier)
			}
			for _, path := range args {
				if err := app.packDocument(builder, path, params.identifier, version, tag, !params.noValidate); err != nil {
					return err
				}
			}
			if params.overrides != "" {
				err := app.packDocument(builder, params.overrides,
					driveroverrides.ChunkIdentifier, driveroverrides.ChunkVersion, tag, !params.noValidate)
				if err != nil {
					return err
				}
			}

			written, err := writeChunkFile(builder, params.out)
			if err != nil {
				return err
			}
			app.Logger.Info("wrote chunk file",
				"path", params.out,
				"chunks", builder.ChunkCount(),
				"bytes", written,
			)
			return nil
		},
	}
}

// defaultChunkVersion returns the version current readers expect for
// the known identifiers and 1 otherwise.
func defaultChunkVersion(identifier string) uint32 {
	switch identifier {
	case sysinfo.ChunkIdentifier:
		return sysinfo.ChunkVersion
	case driveroverrides.ChunkIdentifier:
		return driveroverrides.ChunkVersion
	default:
		return 1
	}
}

// packDocument reads one document, optionally checks that it decodes,
// and adds it to builder.
func (app *App) packDocument(builder *chunkfile.Builder, path, identifier string, version uint32, tag chunkfile.CompressionTag, validate bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	data = app.prepareDocument(data)

	switch {
	case identifier == sysinfo.ChunkIdentifier:
		if _, err := sysinfo.DecodeBytes(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case identifier == driveroverrides.ChunkIdentifier && validate:
		if _, err := driveroverrides.Decode(string(data), version); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := builder.AddChunk(identifier, version, data, tag); err != nil {
		return fmt.Errorf("adding %s: %w", path, err)
	}
	app.Logger.Debug("added chunk",
		"path", path,
		"identifier", identifier,
		"version", version,
		"bytes", len(data),
	)
	return nil
}

// writeChunkFile writes the built file to path through a temporary
// file in the same directory and a rename.
func writeChunkFile(builder *chunkfile.Builder, path string) (int64, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".sysinfo-pack-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp chunk file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := builder.WriteTo(tmpFile)
	if err != nil {
		tmpFile.Close()
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temp chunk file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("renaming chunk file: %w", err)
	}

	success = true
	return written, nil
}
