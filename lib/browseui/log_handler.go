// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// statusRecordMsg delivers a slog record to the model for display in
// the status bar. Only records at or above the handler's configured
// level are delivered.
type statusRecordMsg struct {
	// Summary is the human-readable one-line message.
	Summary string

	// Level is the slog level of the record.
	Level slog.Level
}

// StatusLogHandler is a slog.Handler that routes log records into the
// bubbletea program as status-bar messages. Writing to stderr from
// inside the TUI would corrupt the alt-screen display, so any
// component holding a logger built on this handler transparently
// surfaces into the UI footer instead.
//
// The handler must be created before the program starts. Call
// SetProgram once the tea.Program exists; records arriving earlier
// are dropped. Handlers derived via WithAttrs/WithGroup share the
// same program pointer, so a single SetProgram call covers them all.
type StatusLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewStatusLogHandler creates a handler delivering records at or
// above the given level to the status bar.
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives status
// messages. Safe to call from any goroutine.
func (handler *StatusLogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled implements slog.Handler.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends
// it to the program. Records before SetProgram are silently dropped.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	summary := record.Message
	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	if len(attrParts) > 0 {
		summary += " (" + joinParts(attrParts) + ")"
	}

	program.Send(statusRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs implements slog.Handler. The derived handler shares the
// program pointer with its parent.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(sliceClone(handler.attrs), attrs...),
		groups:  sliceClone(handler.groups),
	}
}

// WithGroup implements slog.Handler. Groups only affect derived-attr
// bookkeeping; the flat summary format ignores them.
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   sliceClone(handler.attrs),
		groups:  append(sliceClone(handler.groups), name),
	}
}

func joinParts(parts []string) string {
	result := ""
	for index, part := range parts {
		if index > 0 {
			result += ", "
		}
		result += part
	}
	return result
}

// sliceClone returns a shallow copy of a slice, avoiding aliasing
// between a handler and its derived handlers.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
