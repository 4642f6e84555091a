// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

// Package browseui implements the tubeview terminal user interface.
// Built on bubbletea (Elm architecture), it provides a search input
// above a two-pane view: channels on the left, the selected channel's
// videos on the right, with a one-line status bar at the bottom.
//
// The UI depends on two collaborators: a [youtube.Provider] for
// search and video listings, and a [player.Player] for playback. Both
// run off the event loop as tea.Cmd tasks; results come back as
// messages consumed by [Model.Update], so no state is shared between
// goroutines. The one deliberate exception is the video-list reload
// on channel navigation, which runs synchronously and may pause the
// UI briefly.
//
// Data flow:
//
//	key event -> Update -> state transition [-> tea.Cmd task]
//	                |                             |
//	            View (pure)              result message -> Update
package browseui
