// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// sysinfo decodes and inspects versioned system info documents and
// the chunk files that carry them.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/commands"
	"github.com/bureau-foundation/sysinfo/lib/version"
	"github.com/spf13/pflag"
)

func main() {
	err := run(os.Args[1:])
	code, report := cli.ExitStatus(err)
	if report {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) error {
	var (
		configPath  string
		logLevel    string
		showVersion bool
		showHelp    bool
	)

	flagSet := pflag.NewFlagSet("sysinfo", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(os.Stderr)
	flagSet.StringVar(&configPath, "config", "", "path to sysinfo.yaml (default: $SYSINFO_CONFIG, then built-in defaults)")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error (overrides log.level)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&showHelp, "help", "h", false, "show help")
	flagSet.Usage = func() {}

	if err := flagSet.Parse(args); err != nil {
		return cli.Usagef("%v\n\nRun 'sysinfo --help' for usage.", err)
	}

	if showVersion {
		fmt.Printf("sysinfo %s\n", version.Full())
		return nil
	}

	cfg, err := commands.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	level, err := cli.ParseLogLevel(logLevel)
	if err != nil {
		return &cli.UsageError{Err: err}
	}

	app := commands.NewApp(cfg, cli.NewCommandLogger(level))
	root := commands.Root(app)
	if showHelp {
		root.PrintHelp(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nGlobal flags:\n%s", flagSet.FlagUsages())
		return nil
	}
	return root.Execute(flagSet.Args())
}
