// Package main is the entry point for Quickcard, a business card editor.
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

	"github.com/dshills/quickcard/internal/app"
	"github.com/dshills/quickcard/internal/config"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/logging"
	"github.com/dshills/quickcard/internal/script"
	"github.com/dshills/quickcard/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line.
type options struct {
	ConfigPath  string
	ScriptPath  string
	OutputDir   string
	Format      string
	LogLevel    string
	LogFile     string
	Preview     bool
	Watch       bool
	ShowVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.ShowVersion {
		fmt.Fprintf(stdout, "Quickcard %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Format != "" {
		cfg.Export.Format = opts.Format
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var frames *export.FrameSync
	appOpts := []app.Option{app.WithLogger(logger)}
	if opts.Preview {
		frames = export.NewFrameSync()
		appOpts = append(appOpts, app.WithRenderSync(frames))
	}
	editor, err := app.New(cfg, appOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if opts.ScriptPath != "" {
		var out io.Writer = stdout
		if opts.Preview {
			out = nil
		}
		runner := script.NewRunner(editor, script.WithLogger(logger), script.WithOutput(out))
		err := runner.RunFile(ctx, opts.ScriptPath)
		runner.Close()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, func(cfg config.Config, err error) {
			if err != nil {
				return
			}
			logger.SetLevel(logging.ParseLevel(cfg.Logging.Level))
			if err := editor.ApplyConfig(cfg); err != nil {
				logger.Warn("apply config: %v", err)
			}
		}, config.WithWatcherLogger(logger))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("config watcher: %v", err)
			}
		}()
	}

	if opts.Preview {
		return runPreview(ctx, editor, frames, opts, logger, stderr)
	}
	return runExport(ctx, editor, cfg.ExportFormat(), opts.OutputDir, stdout, stderr)
}

func runPreview(ctx context.Context, editor *app.App, frames *export.FrameSync, opts options, logger *logging.Logger, stderr io.Writer) int {
	screen, err := tui.OpenTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	p := tui.New(editor, screen, frames, tui.WithExportDir(opts.OutputDir), tui.WithLogger(logger))
	if err := p.Run(ctx); err != nil {
		screen.Fini()
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runExport(ctx context.Context, editor *app.App, format export.Format, dir string, stdout, stderr io.Writer) int {
	path, err := editor.ExportFile(ctx, format, dir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, path)
	return 0
}

// newLogger builds the process logger. The preview owns the terminal, so
// without a log file it logs nowhere.
func newLogger(cfg config.Config, opts options, stderr io.Writer) (*logging.Logger, func(), error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Logging.Level)

	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		lc.Output = f
		return logging.New(lc), func() { f.Close() }, nil
	case opts.Preview:
		return logging.Nop(), func() {}, nil
	default:
		lc.Output = stderr
		return logging.New(lc), func() {}, nil
	}
}

// parseFlags parses args. It returns flag.ErrHelp after printing usage
// for -help.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var showHelp bool

	fs := flag.NewFlagSet("quickcard", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.ScriptPath, "script", "", "Lua script that builds the card")
	fs.StringVar(&opts.ScriptPath, "s", "", "Lua script (shorthand)")
	fs.StringVar(&opts.OutputDir, "o", ".", "Directory exports are written to")
	fs.StringVar(&opts.Format, "format", "", "Export format: png or jpeg (default from config)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&opts.Preview, "preview", false, "Open the interactive terminal preview")
	fs.BoolVar(&opts.Preview, "p", false, "Open the terminal preview (shorthand)")
	fs.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.ShowVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Quickcard - business card editor\n\n")
		fmt.Fprintf(stderr, "Usage: quickcard [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  quickcard -s card.lua               Build a card and export business-card.png\n")
		fmt.Fprintf(stderr, "  quickcard -s card.lua -format jpeg  Export JPEG instead\n")
		fmt.Fprintf(stderr, "  quickcard -p -s card.lua            Edit the card in the terminal\n")
		fmt.Fprintf(stderr, "  quickcard -p -c card.toml -watch    Preview and reload settings on save\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if showHelp {
		fs.Usage()
		return opts, flag.ErrHelp
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}
