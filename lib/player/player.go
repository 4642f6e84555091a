// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

// Package player runs an external media player for tubeview. The
// [Player] interface is the playback collaborator the UI depends on;
// [MPV] implements it by spawning mpv against a watch URL.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"
)

// ErrInterrupted reports that playback was cut short by a signal or
// context cancellation. It is swallowed at the UI task boundary: an
// interrupted playback is not a failure.
var ErrInterrupted = errors.New("playback interrupted")

// Item is one playable entry, built from a selected video listing.
type Item struct {
	ID              string
	Title           string
	DurationSeconds int
}

// Options controls a single Play call. Shuffle and Repeat exist for
// interface completeness; the UI always passes them as false.
type Options struct {
	// Video enables the player's video output. When false, playback
	// is audio-only.
	Video   bool
	Shuffle bool
	Repeat  bool
}

// Player streams a single item through an external media player. Play
// blocks until playback ends; the UI runs it off its event loop.
type Player interface {
	Play(ctx context.Context, item Item, options Options) error
}

// IsInterrupt reports whether a Play error represents an interrupted
// playback rather than a real failure.
func IsInterrupt(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled)
}

// MPV plays items by spawning the mpv binary.
type MPV struct {
	binary    string
	extraArgs []string
	logger    *slog.Logger
}

// NewMPV creates an mpv-backed player. binary defaults to "mpv" when
// empty; extraArgs are appended to every invocation ahead of the URL.
func NewMPV(binary string, extraArgs []string, logger *slog.Logger) *MPV {
	if binary == "" {
		binary = "mpv"
	}
	return &MPV{binary: binary, extraArgs: extraArgs, logger: logger}
}

// Play runs mpv for the given item and blocks until it exits. A SIGINT
// or SIGTERM delivered to mpv, or cancellation of ctx, is reported as
// [ErrInterrupted]; any other non-zero exit is a playback failure.
func (mpv *MPV) Play(ctx context.Context, item Item, options Options) error {
	args := mpv.buildArgs(item, options)
	mpv.logger.Debug("starting playback", "video", item.ID, "title", item.Title)

	command := exec.CommandContext(ctx, mpv.binary, args...)
	err := command.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ErrInterrupted
	}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			switch status.Signal() {
			case syscall.SIGINT, syscall.SIGTERM:
				return ErrInterrupted
			}
		}
	}
	return fmt.Errorf("mpv: %w", err)
}

// buildArgs assembles the mpv command line for one item.
func (mpv *MPV) buildArgs(item Item, options Options) []string {
	args := []string{"--really-quiet", "--no-terminal"}
	if !options.Video {
		args = append(args, "--no-video")
	}
	if options.Shuffle {
		args = append(args, "--shuffle")
	}
	if options.Repeat {
		args = append(args, "--loop-playlist=inf")
	}
	args = append(args, mpv.extraArgs...)
	return append(args, WatchURL(item.ID))
}

// WatchURL builds the playback URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
