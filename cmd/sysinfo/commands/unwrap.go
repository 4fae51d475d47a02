// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
	"github.com/spf13/pflag"
)

func unwrapCommand(app *App) *cli.Command {
	var compact bool

	return &cli.Command{
		Name:    "unwrap",
		Summary: "Print the inner system object of a document",
		Description: `Print the "system" member of a full system info document.

Member order is preserved. A document without a "system" member is
printed unchanged. For chunk files the SystemInfo chunk is unwrapped.`,
		Usage: "sysinfo unwrap [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("unwrap", pflag.ContinueOnError)
			flagSet.BoolVarP(&compact, "compact", "c", false, "print compact JSON without indentation or colour")
			return flagSet
		},
		Run: func(args []string) error {
			in, err := app.readInput(args, false)
			if err != nil {
				return err
			}

			document := string(in.document)
			if in.isChunkFile() {
				defer in.chunks.Close()
				document, err = sysinfo.UnwrapChunk(in.chunks)
				if err != nil {
					return fmt.Errorf("unwrapping %s: %w", in.name, err)
				}
			}
			text := sysinfo.Unwrap(document)
			if text == "" {
				return fmt.Errorf("unwrapping %s: %w", in.name, sysinfo.ErrInvalidJSON)
			}

			if compact {
				_, err := io.WriteString(app.Stdout, text+"\n")
				return err
			}
			return app.writeJSON([]byte(text))
		},
	}
}
