// Package main is the entry point of the stormline preview.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormline/internal/app"
	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app     app.Options
	print   bool
	width   int
	logFile string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	var logOut io.Writer = os.Stderr
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	} else if !opts.print {
		// The preview owns the terminal.
		logOut = io.Discard
	}
	opts.app.Logger = logging.New(logging.Config{Output: logOut, Prefix: "stormline"})

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if opts.print {
		ansi := terminal.NewANSI(nil, application.Registry())
		if err := application.Print(os.Stdout, ansi, opts.width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.RunPreview(screen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stormline", "config.toml")
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.app.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.app.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.app.File, "file", "", "Buffer to open")
	flag.StringVar(&opts.app.Mode, "mode", "n", "Initial mode code (n, i, v, R, c, t)")
	flag.StringVar(&opts.app.InitScript, "init", "", "Lua script to run on startup")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to the configured level")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.IntVar(&opts.width, "width", 120, "Line width for -print")
	flag.BoolVar(&opts.print, "print", false, "Print the lines once instead of running the preview")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stormline - status line and winbar preview\n\n")
		fmt.Fprintf(os.Stderr, "Usage: stormline [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stormline main.go                 Preview with main.go open\n")
		fmt.Fprintf(os.Stderr, "  stormline -print -width 80 x.go   Print both lines once\n")
		fmt.Fprintf(os.Stderr, "  stormline -init init.lua          Run a Lua script first\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("stormline %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.app.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
		os.Exit(1)
	}

	if opts.app.File == "" && flag.NArg() > 0 {
		opts.app.File = flag.Arg(0)
	}
	if opts.width <= 0 {
		fmt.Fprintf(os.Stderr, "Error: width must be positive\n")
		os.Exit(1)
	}
	return opts
}
