// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tubeview/tubeview/lib/player"
	"github.com/tubeview/tubeview/lib/youtube"
)

// FocusRegion identifies which part of the UI receives keyboard input.
type FocusRegion int

const (
	// FocusSearch routes printable keys to the search input.
	FocusSearch FocusRegion = iota
	// FocusChannels means navigation keys move the channel cursor.
	FocusChannels
	// FocusVideos means navigation keys move the video cursor.
	FocusVideos
)

// paneGap is the spacing between the channel and video panes.
const paneGap = 2

// searchResultMsg delivers a completed search task: the new channel
// list plus the video listing for its first entry, fetched in the
// same task so the UI applies both atomically.
type searchResultMsg struct {
	query     string
	channels  []youtube.Channel
	videos    []youtube.Video
	videosErr error
}

// searchFailedMsg delivers a search task failure. The channel list is
// left untouched in this path.
type searchFailedMsg struct {
	query string
	err   error
}

// playbackFinishedMsg is sent when a playback task ends, successfully
// or not. An interrupt error is swallowed; anything else surfaces in
// the status bar.
type playbackFinishedMsg struct {
	err error
}

// NowPlaying describes the item a playback task is streaming.
type NowPlaying struct {
	Title           string
	DurationSeconds int
}

// Model is the top-level bubbletea model for the channel browser.
// Background tasks never touch it directly: they return messages that
// Update folds into the next state.
type Model struct {
	provider    youtube.Provider
	mediaPlayer player.Player
	theme       Theme
	keys        KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	searchInput textinput.Model

	// Browsing state. The selected indices are only meaningful while
	// their list is non-empty; both lists are replaced wholesale, the
	// channels by each search and the videos by each channel change.
	query           string
	channels        []youtube.Channel
	selectedChannel int
	videos          []youtube.Video
	selectedVideo   int

	// nowPlaying is set while a playback task is active. Overlapping
	// playback tasks are allowed; the field is last-write-wins.
	nowPlaying *NowPlaying

	// statusText is the most recent user-facing message. Overwritten,
	// never queued. statusError styles it as a failure notice.
	statusText  string
	statusError bool

	focus FocusRegion
}

// NewModel creates a Model wired to the given collaborators. Focus
// starts on the search input, matching the empty initial state.
func NewModel(provider youtube.Provider, mediaPlayer player.Player) Model {
	input := textinput.New()
	input.Prompt = "Search channels: "
	input.PromptStyle = lipgloss.NewStyle().Foreground(DefaultTheme.PromptForeground)
	input.Focus()

	return Model{
		provider:    provider,
		mediaPlayer: mediaPlayer,
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		searchInput: input,
		focus:       FocusSearch,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Key events drive the state machine;
// task completion messages fold asynchronous results into the state.
// bubbletea redraws after every Update, so each transition that
// changes visible state is followed by a render.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.searchInput.Width = max(message.Width-len(model.searchInput.Prompt)-1, 10)
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case searchResultMsg:
		return model.applySearchResult(message), nil

	case searchFailedMsg:
		model.statusText = fmt.Sprintf("Search failed: %v", message.err)
		model.statusError = true
		return model, nil

	case playbackFinishedMsg:
		model.nowPlaying = nil
		if message.err != nil && !player.IsInterrupt(message.err) {
			model.statusText = fmt.Sprintf("Playback error: %v", message.err)
			model.statusError = true
		}
		return model, nil

	case statusRecordMsg:
		model.statusText = message.Summary
		model.statusError = message.Level >= slog.LevelError
		return model, nil
	}

	// Everything else (cursor blink ticks) belongs to the input.
	var cmd tea.Cmd
	model.searchInput, cmd = model.searchInput.Update(message)
	return model, cmd
}

// handleKey routes a key event based on the current focus region.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusNext):
		model.cycleFocus()
		return model, nil
	}

	if model.focus == FocusSearch {
		if key.Matches(message, model.keys.Submit) {
			return model.submitSearch()
		}
		var cmd tea.Cmd
		model.searchInput, cmd = model.searchInput.Update(message)
		return model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Up):
		model.moveSelection(-1)
	case key.Matches(message, model.keys.Down):
		model.moveSelection(1)
	case key.Matches(message, model.keys.Submit):
		return model.playSelected(false)
	case key.Matches(message, model.keys.PlayVideo):
		return model.playSelected(true)
	}
	return model, nil
}

// cycleFocus advances search -> channels -> videos -> search, keeping
// the text input's focus state in sync.
func (model *Model) cycleFocus() {
	switch model.focus {
	case FocusSearch:
		model.focus = FocusChannels
		model.searchInput.Blur()
	case FocusChannels:
		model.focus = FocusVideos
	case FocusVideos:
		model.focus = FocusSearch
		model.searchInput.Focus()
	}
}

// moveSelection shifts the cursor of the focused pane, clamped to the
// list bounds. Channel movement reloads the video pane synchronously;
// the brief pause is an accepted tradeoff for not having to reconcile
// a stale video list against a moved cursor.
func (model *Model) moveSelection(delta int) {
	switch model.focus {
	case FocusChannels:
		if len(model.channels) == 0 {
			return
		}
		model.selectedChannel = clampIndex(model.selectedChannel+delta, len(model.channels))
		model.reloadVideos()
	case FocusVideos:
		if len(model.videos) == 0 {
			return
		}
		model.selectedVideo = clampIndex(model.selectedVideo+delta, len(model.videos))
	}
}

// submitSearch starts a search task for the input text. Empty or
// whitespace-only input is a no-op. The input buffer is cleared once
// the task is dispatched.
func (model Model) submitSearch() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(model.searchInput.Value())
	if query == "" {
		return model, nil
	}

	model.query = query
	model.statusText = "Searching..."
	model.statusError = false
	command := searchTask(model.provider, query)
	model.searchInput.SetValue("")
	return model, command
}

// searchTask runs the search collaborator off the event loop. On
// success it also fetches the first channel's videos so the result
// message replaces both lists atomically.
func searchTask(provider youtube.Provider, query string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		channels, err := provider.SearchChannels(ctx, query)
		if err != nil {
			return searchFailedMsg{query: query, err: err}
		}

		result := searchResultMsg{query: query, channels: channels}
		if len(channels) > 0 {
			result.videos, result.videosErr = provider.ChannelVideos(ctx, channels[0].ID)
		}
		return result
	}
}

// applySearchResult replaces the channel list and the video list for
// the new selection. Concurrent searches resolve last-write-wins;
// there is no ordering guarantee between overlapping tasks.
func (model Model) applySearchResult(message searchResultMsg) Model {
	model.channels = message.channels
	model.selectedChannel = 0
	model.videos = message.videos
	model.selectedVideo = 0
	if message.videosErr != nil {
		model.videos = nil
	}
	// The count summary supersedes any video reload notice, as a
	// search that found channels is a success even when the first
	// listing failed; navigating re-triggers the reload.
	model.statusText = fmt.Sprintf("Found %d channel(s).", len(message.channels))
	model.statusError = false
	return model
}

// playSelected starts a playback task for the selected video. Only
// meaningful when the video pane has focus and is non-empty. A task
// already in flight is not interrupted; overlapping playback is
// allowed by explicit user action.
func (model Model) playSelected(videoMode bool) (tea.Model, tea.Cmd) {
	if model.focus != FocusVideos || len(model.videos) == 0 {
		return model, nil
	}

	video := model.videos[model.selectedVideo]
	model.nowPlaying = &NowPlaying{Title: video.Title, DurationSeconds: video.DurationSeconds}
	model.statusText = ""
	model.statusError = false
	return model, playbackTask(model.mediaPlayer, video, videoMode)
}

// playbackTask streams one item through the player collaborator off
// the event loop. Interrupt classification happens at the message
// boundary in Update, not here.
func playbackTask(mediaPlayer player.Player, video youtube.Video, videoMode bool) tea.Cmd {
	return func() tea.Msg {
		err := mediaPlayer.Play(context.Background(), player.Item{
			ID:              video.ID,
			Title:           video.Title,
			DurationSeconds: video.DurationSeconds,
		}, player.Options{Video: videoMode})
		return playbackFinishedMsg{err: err}
	}
}

// reloadVideos fetches the listing for the currently selected channel
// and resets the video cursor. Runs synchronously on the UI path as
// part of a channel-selection transition.
func (model *Model) reloadVideos() {
	if len(model.channels) == 0 {
		model.videos = nil
		model.selectedVideo = 0
		return
	}

	channel := model.channels[model.selectedChannel]
	videos, err := model.provider.ChannelVideos(context.Background(), channel.ID)
	if err != nil {
		model.statusText = fmt.Sprintf("Failed to load videos: %v", err)
		model.statusError = true
		model.videos = nil
		model.selectedVideo = 0
		return
	}
	model.videos = videos
	model.selectedVideo = 0
}

// View implements tea.Model. Rendering is pure: it reads the current
// model snapshot and nothing else.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	paneHeight := max(model.height-2, 1)
	channelWidth := (model.width - paneGap) / 2
	videoWidth := model.width - paneGap - channelWidth

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		model.renderChannelPane(channelWidth, paneHeight),
		strings.Repeat(" ", paneGap),
		model.renderVideoPane(videoWidth, paneHeight),
	)

	return model.searchInput.View() + "\n" + content + "\n" + model.renderStatusBar()
}

// clampIndex clamps an index into [0, length-1]. length must be > 0.
func clampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length-1 {
		return length - 1
	}
	return index
}
