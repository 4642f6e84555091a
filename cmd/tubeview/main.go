// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

// tubeview is a terminal front-end for browsing YouTube channels and
// queueing playback. Type a query, pick a channel, pick a video, and
// it streams through mpv, audio-only on Enter or with video on 'v'.
//
// Search and metadata come from YouTube's Innertube API; playback is
// delegated to an external player binary. Neither blocks the UI:
// both run as background tasks reporting back through the event loop.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tubeview/tubeview/lib/browseui"
	"github.com/tubeview/tubeview/lib/config"
	"github.com/tubeview/tubeview/lib/player"
	"github.com/tubeview/tubeview/lib/version"
	"github.com/tubeview/tubeview/lib/youtube"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var playerBinary string
	var logOutput string

	flagSet := pflag.NewFlagSet("tubeview", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to tubeview.yaml (default: $TUBEVIEW_CONFIG, else built-in defaults)")
	flagSet.StringVar(&playerBinary, "player", "", "media player binary (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// other arguments.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("tubeview")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tubeview is interactive; stdout must be a terminal")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if playerBinary != "" {
		cfg.Player.Binary = playerBinary
	}

	// Background logging goes to the status bar, never stderr: the
	// alt-screen display would be corrupted by stray writes. An
	// optional file handler captures everything for post-mortem
	// debugging.
	statusHandler := browseui.NewStatusLogHandler(slog.LevelWarn)
	var logger *slog.Logger
	if logOutput != "" {
		fileHandler, closeFile, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return fmt.Errorf("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer closeFile()
		logger = slog.New(fanoutHandler{statusHandler, fileHandler})
	} else {
		logger = slog.New(statusHandler)
	}

	provider := youtube.NewInnertubeClient(logger,
		youtube.WithRegion(cfg.YouTube.Region, cfg.YouTube.Language),
		youtube.WithMaxPages(cfg.YouTube.MaxPages),
	)
	mediaPlayer := player.NewMPV(cfg.Player.Binary, cfg.Player.Args, logger)

	model := browseui.NewModel(provider, mediaPlayer)
	program := tea.NewProgram(model, tea.WithAltScreen())
	statusHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tubeview is an interactive terminal UI for browsing YouTube channels.

Type a query and press Enter to search channels. Tab switches between
the search input, the channel pane, and the video pane. Up/Down move
the selection; picking a channel loads its videos. Enter plays the
selected video audio-only, v plays it with video output. Esc quits.

Playback requires a media player binary (mpv by default) on PATH or
configured via --player / the config file.

Usage:
  tubeview [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a slog.JSONHandler writing to the given
// path. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler sends each record to multiple underlying handlers. A
// record is enabled if any sub-handler is enabled for its level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
