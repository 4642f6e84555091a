// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

// Package youtube provides channel search and video listing for the
// tubeview TUI. The [Provider] interface decouples the UI from the
// data backend: [InnertubeClient] talks to YouTube's internal
// Innertube API over plain HTTP, while tests substitute in-memory
// fakes.
//
// Raw API payloads are reduced to boundary record types
// ([SearchResult], [VideoRecord]) with explicit optional fields, then
// validated and defaulted into the UI-facing [Channel] and [Video]
// types. Malformed entries degrade (empty description, zero duration)
// or are dropped (no id and no title); they never produce errors.
package youtube
