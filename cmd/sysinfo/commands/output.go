// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/codec"
	"github.com/bureau-foundation/sysinfo/lib/config"
	"github.com/bureau-foundation/sysinfo/lib/sysinfo"
	"github.com/muesli/termenv"
	"github.com/tidwall/pretty"
)

// Highlighting styles used when output.style is empty.
const (
	darkStyle  = "monokai"
	lightStyle = "github"
)

// validateFormat rejects formats config.Validate would reject, for
// values given on the command line.
func validateFormat(format string) error {
	switch format {
	case config.FormatJSON, config.FormatCBOR, config.FormatDiag, config.FormatSummary:
		return nil
	}
	return cli.Usagef("unknown format %q (want json, cbor, diag, or summary)", format)
}

// writeRecord writes record to Stdout in the given format.
func (app *App) writeRecord(record sysinfo.SystemRecord, format string) error {
	switch format {
	case config.FormatJSON:
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		return app.writeJSON(data)

	case config.FormatCBOR:
		if app.stdoutIsTerminal() {
			app.Logger.Warn("writing binary CBOR to a terminal; redirect stdout or use --format diag")
		}
		data, err := codec.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		_, err = app.Stdout.Write(data)
		return err

	case config.FormatDiag:
		data, err := codec.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		notation, _, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("diagnostic notation: %w", err)
		}
		_, err = fmt.Fprintln(app.Stdout, notation)
		return err

	case config.FormatSummary:
		return app.writeSummary(record)
	}
	return validateFormat(format)
}

// writeJSON indents compact JSON and writes it to Stdout, highlighted
// when colour is enabled.
func (app *App) writeJSON(data []byte) error {
	indented := pretty.PrettyOptions(data, &pretty.Options{
		Width:  80,
		Prefix: "",
		Indent: "  ",
	})
	if !app.colorEnabled() {
		_, err := app.Stdout.Write(indented)
		return err
	}
	return quick.Highlight(app.Stdout, string(indented), "json", "terminal256", app.highlightStyle())
}

// highlightStyle returns output.style, or a style matched to the
// terminal background when none is configured.
func (app *App) highlightStyle() string {
	if app.Config.Output.Style != "" {
		return app.Config.Output.Style
	}
	if termenv.HasDarkBackground() {
		return darkStyle
	}
	return lightStyle
}
