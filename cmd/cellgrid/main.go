// Package main is the entry point for the cellgrid constraint explorer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/dshills/cellgrid/internal/config"
	"github.com/dshills/cellgrid/internal/logging"
	"github.com/dshills/cellgrid/internal/renderer"
	"github.com/dshills/cellgrid/internal/renderer/backend"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// ansiFallback is the screen size assumed when stdout is not a terminal.
var ansiFallback = core.NewSize(80, 24)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	backend     string
	logLevel    string
	frames      int
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("cellgrid", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "cellgrid.toml", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "cellgrid.toml", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.backend, "backend", "", "Output backend (tcell, ansi)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.IntVar(&opts.frames, "frames", -1, "Frames to draw with the ansi backend")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "cellgrid - terminal layout and diff renderer explorer\n\n")
		fmt.Fprintf(stderr, "Usage: cellgrid [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		for _, name := range config.EnvVars() {
			fmt.Fprintf(stderr, "  %s\n", name)
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  cellgrid                         Interactive explorer\n")
		fmt.Fprintf(stderr, "  cellgrid -backend ansi -frames 3 Print three frames\n")
	}

	err := fs.Parse(args)
	return opts, err
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "cellgrid %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.backend != "" {
		cfg.Demo.Backend = opts.backend
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.frames >= 0 {
		cfg.Demo.Frames = opts.frames
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(log)

	log.Info("starting cellgrid %s with %s backend", version, cfg.Demo.Backend)
	if cfg.Demo.Backend == "ansi" {
		err = runANSI(cfg, stdout, log)
	} else {
		err = runTerminal(cfg, opts.configPath, log)
	}
	if err != nil {
		log.Error("%v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("shutdown complete")
	return 0
}

// newLogger writes to the configured file, or to stderr for the ansi
// backend. The tcell backend owns the terminal, so without a file its logs are dropped.
func newLogger(cfg *config.Config, stderr io.Writer) (*logging.Logger, func(), error) {
	lc := logging.Config{Level: cfg.Log.LogLevel(), Output: stderr, Prefix: "cellgrid"}
	if cfg.Log.File != "" {
		log, f, err := logging.OpenFile(cfg.Log.File, lc)
		if err != nil {
			return nil, nil, err
		}
		return log, func() { _ = f.Close() }, nil
	}
	if cfg.Demo.Backend != "ansi" {
		return logging.Nop(), func() {}, nil
	}
	return logging.New(lc), func() {}, nil
}

func rendererOptions(cfg *config.Config, log *logging.Logger) renderer.Options {
	opts := renderer.DefaultOptions()
	if cfg.Renderer.FixedViewport() {
		opts.Viewport = renderer.Fixed(cfg.Renderer.Fixed.Rect())
	}
	opts.ClearOnRepaint = cfg.Renderer.ClearOnRepaint
	if cfg.Renderer.CacheSize > 0 {
		opts.CacheSize = cfg.Renderer.CacheSize
	}
	opts.Logger = log
	return opts
}

// runANSI draws a fixed number of frames to out, moving the selection each frame.
func runANSI(cfg *config.Config, out io.Writer, log *logging.Logger) error {
	a := backend.NewANSI(out, ansiFallback)
	r, err := renderer.New(a, rendererOptions(cfg, log))
	if err != nil {
		return err
	}
	e, err := newExplorer(cfg)
	if err != nil {
		return err
	}

	for range cfg.Demo.Frames {
		if _, err := r.Draw(e.draw); err != nil {
			return err
		}
		e.selected.Next()
	}

	// Leave the cursor below the drawing.
	if err := a.SetCursorPosition(core.NewPosition(0, r.Area().Bottom())); err != nil {
		return err
	}
	if err := a.ShowCursor(); err != nil {
		return err
	}
	return a.Flush()
}

// runTerminal runs the interactive explorer until the user quits.
func runTerminal(cfg *config.Config, configPath string, log *logging.Logger) error {
	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return err
	}
	defer term.Shutdown()

	r, err := renderer.New(term, rendererOptions(cfg, log))
	if err != nil {
		return err
	}
	if style, err := backend.ParseCursorStyle(cfg.Renderer.CursorStyle); err == nil {
		if err := r.SetCursorStyle(style); err != nil {
			log.Warn("cursor style: %v", err)
		}
	}
	e, err := newExplorer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stop atomic.Bool
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			stop.Store(true)
			term.Interrupt()
		case <-ctx.Done():
		}
	}()

	type reload struct {
		cfg *config.Config
		err error
	}
	reloads := make(chan reload, 1)
	if cfg.Demo.Watch {
		w := config.NewWatcher(configPath)
		go w.Run(ctx, func(c *config.Config, err error) {
			select {
			case reloads <- reload{c, err}:
			case <-ctx.Done():
				return
			}
			term.Interrupt()
		})
	}

	for {
		if _, err := r.Draw(e.draw); err != nil {
			return err
		}

		e.handle(term.PollEvent())
		select {
		case rl := <-reloads:
			if rl.err == nil {
				rl.err = e.apply(rl.cfg)
			}
			if rl.err != nil {
				log.Warn("config reload: %v", rl.err)
				e.message = "reload failed"
			} else {
				log.Info("config reloaded")
				e.message = "reloaded"
			}
		default:
		}

		if e.quit || stop.Load() {
			return nil
		}
	}
}
