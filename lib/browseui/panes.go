// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// selectionPrefix marks the selected row in the focused pane. Rows in
// an unfocused pane keep the two-space prefix so columns don't shift
// when focus moves.
const (
	selectionPrefix = "> "
	normalPrefix    = "  "
)

// renderChannelPane renders the left pane: a title line followed by
// one row per channel, or a hint when no search has run yet. The
// selected channel's description, when present and the pane has
// focus, appears dimmed beneath its row.
func (model Model) renderChannelPane(width, height int) string {
	lines := []string{model.paneTitle("Channels", width)}

	if len(model.channels) == 0 {
		hint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		lines = append(lines, hint.Render(" No channels. Type a query and press Enter."))
		return model.paneBlock(lines, width, height)
	}

	focused := model.focus == FocusChannels
	start, end := visibleWindow(model.selectedChannel, len(model.channels), height-1)
	for index := start; index < end; index++ {
		channel := model.channels[index]
		selected := focused && index == model.selectedChannel
		lines = append(lines, model.renderRow(channel.Title, selected, width))
		if selected && channel.Description != "" && end-start < height-1 {
			description := lipgloss.NewStyle().Foreground(model.theme.FaintText).
				Render(ansi.Truncate("    "+channel.Description, width, "…"))
			lines = append(lines, description)
		}
	}
	return model.paneBlock(lines, width, height)
}

// renderVideoPane renders the right pane: a title line followed by
// one row per video with its formatted duration, or a hint when the
// selected channel has no videos.
func (model Model) renderVideoPane(width, height int) string {
	lines := []string{model.paneTitle("Videos", width)}

	if len(model.videos) == 0 {
		hint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		lines = append(lines, hint.Render(" No videos."))
		return model.paneBlock(lines, width, height)
	}

	focused := model.focus == FocusVideos
	start, end := visibleWindow(model.selectedVideo, len(model.videos), height-1)
	for index := start; index < end; index++ {
		video := model.videos[index]
		row := fmt.Sprintf("%s  [%s]", video.Title, formatDuration(video.DurationSeconds))
		selected := focused && index == model.selectedVideo
		lines = append(lines, model.renderRow(row, selected, width))
	}
	return model.paneBlock(lines, width, height)
}

// renderStatusBar renders the bottom line. Precedence: an active
// playback, then the latest status message, then the static help.
func (model Model) renderStatusBar() string {
	theme := model.theme
	style := lipgloss.NewStyle().Foreground(theme.NormalText)

	var text string
	switch {
	case model.nowPlaying != nil:
		text = fmt.Sprintf("Playing: %s  |  Controls: Enter=play audio, v=play video, Tab=switch pane, Esc=quit",
			model.nowPlaying.Title)
		style = style.Foreground(theme.PlayingForeground)
	case model.statusText != "":
		text = model.statusText
		if model.statusError {
			style = style.Foreground(theme.ErrorForeground)
		}
	default:
		text = "Tab: switch pane | Up/Down: navigate | Enter: search/select | v: play video | Esc: quit"
		style = style.Foreground(theme.HelpText)
	}

	return style.MaxWidth(model.width).Render(ansi.Truncate(text, model.width, "…"))
}

// renderRow renders one list row with the selection prefix and style.
func (model Model) renderRow(text string, selected bool, width int) string {
	prefix := normalPrefix
	style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if selected {
		prefix = selectionPrefix
		style = lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
	}
	return style.Width(width).MaxWidth(width).Render(ansi.Truncate(prefix+text, width, "…"))
}

// paneTitle renders a pane's heading line.
func (model Model) paneTitle(title string, width int) string {
	return lipgloss.NewStyle().
		Foreground(model.theme.TitleForeground).
		Bold(true).
		Width(width).
		MaxWidth(width).
		Render(title)
}

// paneBlock pads or clips pane lines to the fixed pane box so the
// horizontal join never shears.
func (model Model) paneBlock(lines []string, width, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	block := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(block)
}

// visibleWindow returns the [start, end) slice of a list that keeps
// the selected index on screen given the available row count.
func visibleWindow(selected, total, rows int) (int, int) {
	if rows <= 0 {
		return 0, 0
	}
	if total <= rows {
		return 0, total
	}
	start := selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > total {
		start = total - rows
	}
	return start, start + rows
}

// formatDuration renders a second count the way a clock would show
// it: "MM:SS" below an hour, "HH:MM:SS" from an hour upward. The
// count is treated as a time of day, so values past 24h wrap. Videos
// never get there in practice.
func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := (seconds / 3600) % 24
	minutes := (seconds % 3600) / 60
	remainder := seconds % 60
	if seconds < 3600 {
		return fmt.Sprintf("%02d:%02d", minutes, remainder)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, remainder)
}
