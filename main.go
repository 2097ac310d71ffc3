// panel-pulse is a live telemetry dashboard for the terminal.
//
// Independently themed panels render CPU, memory, disk, clock and synthetic
// readings as animated bars, gauges, graphs and per-core columns. Telemetry
// sources publish flat string-addressed snapshots; each panel filters the
// snapshot down to its own addresses, interpolates values toward their new
// targets every frame, and paints through a cached decorative frame.
//
// Usage:
//
//	panel-pulse [flags]
//
// Flags:
//
//	-config string   Path to configuration file (default: ~/.config/panel-pulse/config.yaml)
//	-print           Render one frame per panel to stdout and exit
//	-write-config    Write the default configuration file and exit
//	-verbose         Enable verbose logging
//	-version         Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/panel-pulse/config"
	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/display/tui"
	"gitlab.com/tinyland/lab/panel-pulse/panel"
	"gitlab.com/tinyland/lab/panel-pulse/sources"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/panel-pulse/config.yaml)")
		printOnce   = flag.Bool("print", false, "Render one frame per panel to stdout and exit")
		writeConfig = flag.Bool("write-config", false, "Write the default configuration file and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("panel-pulse %s\n", version)
		return
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "panel-pulse: %v\n", err)
			os.Exit(1)
		}
	}

	if *writeConfig {
		if err := config.Default().Save(path); err != nil {
			fmt.Fprintf(os.Stderr, "panel-pulse: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "panel-pulse: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupLogger(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "panel-pulse: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	registry := sources.NewRegistry()
	registry.Register(sources.NewCPUSource(logger))
	registry.Register(sources.NewSystemSource(logger))
	registry.Register(sources.NewClockSource())
	registry.Register(sources.NewSynthSource())

	if *printOnce {
		if err := renderOnce(cfg, registry, logger); err != nil {
			fmt.Fprintf(os.Stderr, "panel-pulse: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := tui.NewModel(cfg, registry, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "panel-pulse: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger builds the slog logger from configuration: file output when
// configured, stderr otherwise, debug level with -verbose.
func setupLogger(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	out := os.Stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

// renderOnce collects each panel's source a couple of times (so delta-based
// readings have a baseline), renders a single frame per panel and prints
// it. Color output follows the NO_COLOR and pipe detection rules.
func renderOnce(cfg *config.Config, registry *sources.Registry, logger *slog.Logger) error {
	color.Apply()

	width, height := 80, 24
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && h > 0 {
		width, height = w, h
	}

	panelHeight := height - 1
	if panelHeight > 16 {
		panelHeight = 16
	}

	ctx := context.Background()
	for _, pc := range cfg.Panels {
		p := panel.New(pc, logger)

		src, err := registry.Get(pc.Source)
		if err != nil {
			return err
		}
		// Two collects: delta-based sources report zero on the first.
		if snap, err := src.Collect(ctx); err == nil {
			p.ApplyUpdate(snap)
		}
		snap, err := src.Collect(ctx)
		if err != nil {
			return fmt.Errorf("collect %s: %w", pc.Source, err)
		}
		p.ApplyUpdate(snap)

		p.Tick(time.Now())
		fmt.Println(p.Render(width, panelHeight))
	}

	return nil
}
