// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/sysinfo/lib/config"
	"golang.org/x/term"
)

// App holds the state shared by every subcommand.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Config
	Logger *slog.Logger
}

// NewApp returns an App on the process's standard streams.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
		Logger: logger,
	}
}

// LoadConfig resolves the configuration: an explicit --config path
// wins, then SYSINFO_CONFIG, then the built-in defaults.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// colorEnabled reports whether output to Stdout should carry ANSI
// colour, following output.color.
func (app *App) colorEnabled() bool {
	switch app.Config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	file, ok := app.Stdout.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// stdoutIsTerminal reports whether Stdout is an interactive terminal.
func (app *App) stdoutIsTerminal() bool {
	file, ok := app.Stdout.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
