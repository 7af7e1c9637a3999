// Package main is the entry point for keybind.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keybind/internal/app"
	"github.com/dshills/keybind/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", config.DefaultConfigFile, "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", config.DefaultConfigFile, "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptName, "name", "", "Script name used in diagnostics")
	flag.StringVar(&opts.Format, "format", "", "Report format (text, json, yaml)")
	flag.StringVar(&opts.Format, "f", "", "Report format (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.Timeout, "timeout", "", "Script execution timeout (e.g. 5s, 0 disables)")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-run the script when it changes")
	flag.BoolVar(&opts.Watch, "w", false, "Re-run the script when it changes (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keybind - declare key bindings in Lua\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keybind [options] [script]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keybind                     Run ./user.lua\n")
		fmt.Fprintf(os.Stderr, "  keybind keys.lua            Run a specific script\n")
		fmt.Fprintf(os.Stderr, "  keybind -f json keys.lua    Report bindings as JSON\n")
		fmt.Fprintf(os.Stderr, "  keybind -w keys.lua         Re-run on every save\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keybind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.ScriptPath = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one script, got %d\n", flag.NArg())
		os.Exit(1)
	}

	return opts
}
