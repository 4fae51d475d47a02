// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "sysinfo",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(args []string) error {
					called = "decode"
					return nil
				},
			},
			{
				Name: "chunks",
				Run: func(args []string) error {
					called = "chunks"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"chunks"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "chunks" {
		t.Errorf("dispatched to %q, want %q", called, "chunks")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var format string
	var receivedArgs []string

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVar(&format, "format", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"--format", "cbor", "doc.json"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if format != "cbor" {
		t.Errorf("format = %q, want cbor", format)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "doc.json" {
		t.Errorf("args = %v, want [doc.json]", receivedArgs)
	}
}

func TestCommand_Execute_UsageErrors(t *testing.T) {
	root := &Command{
		Name: "sysinfo",
		Subcommands: []*Command{
			{
				Name: "decode",
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
					flagSet.String("format", "json", "output format")
					return flagSet
				},
				Run: func(args []string) error { return nil },
			},
		},
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"misspelled command", []string{"decod"}, `did you mean "decode"`},
		{"unrelated command", []string{"xyzzyplugh"}, `unknown command "xyzzyplugh"`},
		{"misspelled flag", []string{"decode", "--fromat", "json"}, "did you mean --format"},
		{"missing subcommand", nil, "subcommand required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := root.Execute(tt.args)
			if err == nil {
				t.Fatal("Execute() = nil, want error")
			}
			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Errorf("error %T is not a *UsageError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "sysinfo",
		Description: "Decode system info documents.",
		Subcommands: []*Command{
			{Name: "decode", Summary: "Decode a document"},
			{Name: "chunks", Summary: "List chunks"},
		},
		Examples: []Example{
			{Description: "Decode a file", Command: "sysinfo decode doc.json"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{
		"Decode system info documents.",
		"sysinfo <command> [flags]",
		"decode",
		"List chunks",
		"# Decode a file",
		"Run 'sysinfo <command> --help'",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReport bool
	}{
		{"success", nil, ExitSuccess, false},
		{"failure", errors.New("boom"), ExitFailure, true},
		{"usage", Usagef("bad flag"), ExitUsage, true},
		{"exit error", &ExitError{Code: 1}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, report := ExitStatus(tt.err)
			if code != tt.wantCode || report != tt.wantReport {
				t.Errorf("ExitStatus(%v) = (%d, %v), want (%d, %v)",
					tt.err, code, report, tt.wantCode, tt.wantReport)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error", "INFO"} {
		if _, err := ParseLogLevel(name); err != nil {
			t.Errorf("ParseLogLevel(%q) = %v", name, err)
		}
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("ParseLogLevel(\"loud\") = nil error")
	}
}
