// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the browser TUI. Navigation
// bindings only apply outside the search input; printable keys typed
// there go to the input buffer.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// FocusNext cycles search input -> channel pane -> video pane.
	FocusNext key.Binding

	// Submit confirms the search input. Outside the search input the
	// same key plays the selected video audio-only.
	Submit key.Binding

	// PlayVideo plays the selected video with video output.
	PlayVideo key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "search/play audio"),
	),
	PlayVideo: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "play video"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("Esc", "quit"),
	),
}
