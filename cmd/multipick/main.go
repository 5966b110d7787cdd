// Package main is the entry point for multipick.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/multipick/internal/app"
	"github.com/dshills/multipick/internal/config"
	"github.com/dshills/multipick/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath  string
	logLevel    string
	limit       int
	query       string
	pick        string
	list        bool
	pretty      bool
	showVersion bool
	showHelp    bool

	// set records which flags were given explicitly.
	set map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "multipick %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := app.NewLogger(cfg.Logging, !opts.list)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	application, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	if opts.list {
		return runList(application, opts, stdout, stderr)
	}
	return runInteractive(application, opts, stdout, stderr)
}

func runList(application *app.Application, opts cliOptions, stdout, stderr io.Writer) int {
	selected, remaining, err := application.List(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := encodeResult(selected, remaining, opts.pretty)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, _ = stdout.Write(out)
	return 0
}

func runInteractive(application *app.Application, opts cliOptions, stdout, stderr io.Writer) int {
	terminal, err := term.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	selected, err := application.Run(context.Background(), terminal)
	if err != nil {
		if errors.Is(err, app.ErrShutdown) || errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := encodeResult(selected, nil, opts.pretty)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, _ = stdout.Write(out)
	return 0
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("multipick", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.IntVar(&opts.limit, "limit", 0, "Maximum number of selected options (0 = unbounded)")
	fs.StringVar(&opts.query, "query", "", "Initial search text")
	fs.StringVar(&opts.pick, "pick", "", "Comma-separated labels selected on start")
	fs.BoolVar(&opts.list, "list", false, "Print the selection and remaining options as JSON and exit")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "multipick - searchable multi-select over a remote option list\n\n")
		fmt.Fprintf(stderr, "Usage: multipick [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  multipick                          Pick coins interactively\n")
		fmt.Fprintf(stderr, "  multipick -limit 3 -pick bitcoin   Start with bitcoin picked, at most 3\n")
		fmt.Fprintf(stderr, "  multipick -list -query eth -pretty Print matching options\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return opts, errors.New("unexpected arguments")
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// loadConfig loads the layered config and applies explicit flags on top.
func loadConfig(opts cliOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath, config.DefaultLoadOptions())
	if err != nil {
		return config.Config{}, err
	}

	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.set["limit"] {
		cfg.Select.Limit = opts.limit
	}
	if opts.set["query"] {
		cfg.Select.Query = opts.query
	}
	if opts.set["pick"] {
		cfg.Select.Picked = config.SplitList(opts.pick)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
