// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tubeview/tubeview/lib/player"
	"github.com/tubeview/tubeview/lib/youtube"
)

// fakeProvider is an in-memory search/metadata collaborator recording
// every call.
type fakeProvider struct {
	channels        []youtube.Channel
	videosByChannel map[string][]youtube.Video
	searchErr       error
	videosErr       error

	searchQueries  []string
	listedChannels []string
}

func (provider *fakeProvider) SearchChannels(_ context.Context, query string) ([]youtube.Channel, error) {
	provider.searchQueries = append(provider.searchQueries, query)
	if provider.searchErr != nil {
		return nil, provider.searchErr
	}
	return provider.channels, nil
}

func (provider *fakeProvider) ChannelVideos(_ context.Context, channelID string) ([]youtube.Video, error) {
	provider.listedChannels = append(provider.listedChannels, channelID)
	if provider.videosErr != nil {
		return nil, provider.videosErr
	}
	return provider.videosByChannel[channelID], nil
}

// fakePlayer records play requests and returns a configured error.
type fakePlayer struct {
	mutex   sync.Mutex
	items   []player.Item
	options []player.Options
	err     error
}

func (p *fakePlayer) Play(_ context.Context, item player.Item, options player.Options) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.items = append(p.items, item)
	p.options = append(p.options, options)
	return p.err
}

// testProvider returns a provider with two channels; channel A has
// two videos, channel B one.
func testProvider() *fakeProvider {
	return &fakeProvider{
		channels: []youtube.Channel{
			{ID: "UCa", Title: "Channel A", Description: "First channel"},
			{ID: "UCb", Title: "Channel B"},
		},
		videosByChannel: map[string][]youtube.Video{
			"UCa": {
				{ID: "a1", Title: "Alpha One", DurationSeconds: 123},
				{ID: "a2", Title: "Alpha Two", DurationSeconds: 3661},
			},
			"UCb": {
				{ID: "b1", Title: "Beta One", DurationSeconds: 45},
			},
		},
	}
}

// newTestModel builds a model with terminal dimensions applied.
func newTestModel(t *testing.T, provider youtube.Provider, mediaPlayer player.Player) Model {
	t.Helper()
	model := NewModel(provider, mediaPlayer)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

// searchFor drives a full search round trip: submit the query, run
// the returned command, and feed its message back into Update.
func searchFor(t *testing.T, model Model, query string) Model {
	t.Helper()
	model.searchInput.SetValue(query)
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if command == nil {
		t.Fatal("submit should spawn a search task")
	}
	updated, _ = model.Update(command())
	return updated.(Model)
}

func TestTabCycling(t *testing.T) {
	model := newTestModel(t, testProvider(), &fakePlayer{})

	if model.focus != FocusSearch {
		t.Fatalf("initial focus should be the search input, got %v", model.focus)
	}

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.focus != FocusChannels {
		t.Errorf("first Tab should focus channels, got %v", model.focus)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.focus != FocusVideos {
		t.Errorf("second Tab should focus videos, got %v", model.focus)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.focus != FocusSearch {
		t.Errorf("third Tab should return to the search input, got %v", model.focus)
	}
	if !model.searchInput.Focused() {
		t.Error("search input should be focused again after the cycle")
	}
}

func TestEmptySearchIsNoOp(t *testing.T) {
	provider := testProvider()
	model := newTestModel(t, provider, &fakePlayer{})

	model.searchInput.SetValue("   ")
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if command != nil {
		t.Error("whitespace-only input should not spawn a task")
	}
	if len(provider.searchQueries) != 0 {
		t.Errorf("provider should not have been called, got %v", provider.searchQueries)
	}
	if model.statusText != "" {
		t.Errorf("status should be unchanged, got %q", model.statusText)
	}
}

func TestSearchRoundTrip(t *testing.T) {
	provider := testProvider()
	model := newTestModel(t, provider, &fakePlayer{})

	model.searchInput.SetValue("  go talks  ")
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if model.statusText != "Searching..." {
		t.Errorf("status during search = %q", model.statusText)
	}
	if model.searchInput.Value() != "" {
		t.Errorf("input should be cleared after submit, got %q", model.searchInput.Value())
	}
	if command == nil {
		t.Fatal("submit should spawn a search task")
	}

	updated, _ = model.Update(command())
	model = updated.(Model)

	if len(provider.searchQueries) != 1 || provider.searchQueries[0] != "go talks" {
		t.Errorf("provider should see the trimmed query, got %v", provider.searchQueries)
	}
	if len(model.channels) != 2 || model.selectedChannel != 0 {
		t.Errorf("channels = %d entries, selected %d", len(model.channels), model.selectedChannel)
	}
	// Exactly one video reload, for the new index 0.
	if len(provider.listedChannels) != 1 || provider.listedChannels[0] != "UCa" {
		t.Errorf("expected one reload for UCa, got %v", provider.listedChannels)
	}
	if len(model.videos) != 2 || model.selectedVideo != 0 {
		t.Errorf("videos = %d entries, selected %d", len(model.videos), model.selectedVideo)
	}
	if model.statusText != "Found 2 channel(s)." {
		t.Errorf("status = %q", model.statusText)
	}
	if model.statusError {
		t.Error("a successful search must not style the status as an error")
	}
}

func TestSearchFailureLeavesChannels(t *testing.T) {
	provider := testProvider()
	model := newTestModel(t, provider, &fakePlayer{})
	model = searchFor(t, model, "first")

	provider.searchErr = errors.New("quota exceeded")
	model = searchFor(t, model, "second")

	if len(model.channels) != 2 {
		t.Errorf("failed search must leave channels untouched, got %d", len(model.channels))
	}
	if !strings.Contains(model.statusText, "quota exceeded") {
		t.Errorf("status should embed the failure detail, got %q", model.statusText)
	}
	if !model.statusError {
		t.Error("a failed search should style the status as an error")
	}
}

func TestChannelNavigationReloadsVideos(t *testing.T) {
	provider := testProvider()
	model := newTestModel(t, provider, &fakePlayer{})
	model = searchFor(t, model, "go")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab}) // -> channels
	model = updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)

	if model.selectedChannel != 1 {
		t.Fatalf("Down should select channel 1, got %d", model.selectedChannel)
	}
	last := provider.listedChannels[len(provider.listedChannels)-1]
	if last != "UCb" {
		t.Errorf("videos should be reloaded for channel B, got %q", last)
	}
	if len(model.videos) != 1 || model.videos[0].ID != "b1" {
		t.Errorf("video list should belong to channel B, got %+v", model.videos)
	}
	if model.selectedVideo != 0 {
		t.Errorf("video cursor must reset to 0 on channel change, got %d", model.selectedVideo)
	}

	// Down again clamps at the last channel.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	if model.selectedChannel != 1 {
		t.Errorf("Down at the end should clamp, got %d", model.selectedChannel)
	}

	// Up twice: back to 0, then clamped at 0.
	for range 2 {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
		model = updated.(Model)
	}
	if model.selectedChannel != 0 {
		t.Errorf("Up should clamp at 0, got %d", model.selectedChannel)
	}
}

func TestVideoCursorDoesNotGoStale(t *testing.T) {
	provider := testProvider()
	model := newTestModel(t, provider, &fakePlayer{})
	model = searchFor(t, model, "go")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab}) // -> channels
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab}) // -> videos
	model = updated.(Model)

	// Move to the second video of channel A.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	if model.selectedVideo != 1 {
		t.Fatalf("video cursor should be 1, got %d", model.selectedVideo)
	}

	// Switch back to the channel pane and change channels: the video
	// cursor must reset rather than point past channel B's one video.
	model.focus = FocusChannels
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	if model.selectedVideo != 0 {
		t.Errorf("video cursor must reset on channel change, got %d", model.selectedVideo)
	}
}

func TestVideoReloadFailureEmptiesList(t *testing.T) {
	provider := testProvider()
	model := newTestModel(t, provider, &fakePlayer{})
	model = searchFor(t, model, "go")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)

	provider.videosErr = errors.New("listing unavailable")
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)

	if len(model.videos) != 0 {
		t.Errorf("failed reload should empty the video list, got %d", len(model.videos))
	}
	if !strings.Contains(model.statusText, "listing unavailable") {
		t.Errorf("status should embed the failure detail, got %q", model.statusText)
	}
}

func TestEnterOnEmptyVideoListIsNoOp(t *testing.T) {
	mediaPlayer := &fakePlayer{}
	model := newTestModel(t, &fakeProvider{}, mediaPlayer)
	model.focus = FocusVideos

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if command != nil {
		t.Error("Enter with no videos should not spawn a task")
	}
	if model.nowPlaying != nil {
		t.Error("nothing should be playing")
	}
	if len(mediaPlayer.items) != 0 {
		t.Errorf("player should not have been called, got %v", mediaPlayer.items)
	}
}

func TestPlayAudio(t *testing.T) {
	provider := testProvider()
	mediaPlayer := &fakePlayer{}
	model := newTestModel(t, provider, mediaPlayer)
	model = searchFor(t, model, "go")
	model.focus = FocusVideos

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if model.nowPlaying == nil || model.nowPlaying.Title != "Alpha One" {
		t.Fatalf("nowPlaying = %+v", model.nowPlaying)
	}
	if model.statusText != "" {
		t.Errorf("status should be cleared when playback starts, got %q", model.statusText)
	}
	if command == nil {
		t.Fatal("play should spawn a playback task")
	}

	updated, _ = model.Update(command())
	model = updated.(Model)

	if len(mediaPlayer.options) != 1 || mediaPlayer.options[0].Video {
		t.Errorf("Enter should request audio-only playback, got %+v", mediaPlayer.options)
	}
	if mediaPlayer.options[0].Shuffle || mediaPlayer.options[0].Repeat {
		t.Errorf("shuffle/repeat must be off, got %+v", mediaPlayer.options[0])
	}
	if model.nowPlaying != nil {
		t.Error("nowPlaying should clear when the task completes")
	}
}

func TestPlayVideoMode(t *testing.T) {
	provider := testProvider()
	mediaPlayer := &fakePlayer{}
	model := newTestModel(t, provider, mediaPlayer)
	model = searchFor(t, model, "go")
	model.focus = FocusVideos

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	model = updated.(Model)
	if command == nil {
		t.Fatal("v should spawn a playback task")
	}
	updated, _ = model.Update(command())
	_ = updated.(Model)

	if len(mediaPlayer.options) != 1 || !mediaPlayer.options[0].Video {
		t.Errorf("v should request video playback, got %+v", mediaPlayer.options)
	}
}

func TestInterruptedPlaybackIsSilent(t *testing.T) {
	provider := testProvider()
	mediaPlayer := &fakePlayer{err: player.ErrInterrupted}
	model := newTestModel(t, provider, mediaPlayer)
	model = searchFor(t, model, "go")
	model.focus = FocusVideos

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	updated, _ = model.Update(command())
	model = updated.(Model)

	if model.nowPlaying != nil {
		t.Error("nowPlaying should clear after an interrupt")
	}
	if model.statusText != "" {
		t.Errorf("an interrupt must not surface as a failure, got %q", model.statusText)
	}
}

func TestFailedPlaybackSetsStatus(t *testing.T) {
	provider := testProvider()
	mediaPlayer := &fakePlayer{err: errors.New("codec meltdown")}
	model := newTestModel(t, provider, mediaPlayer)
	model = searchFor(t, model, "go")
	model.focus = FocusVideos

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	updated, _ = model.Update(command())
	model = updated.(Model)

	if model.nowPlaying != nil {
		t.Error("nowPlaying should clear after a failure")
	}
	if !strings.Contains(model.statusText, "codec meltdown") {
		t.Errorf("status should embed the failure detail, got %q", model.statusText)
	}
	if !model.statusError {
		t.Error("a playback failure should style the status as an error")
	}
}

func TestQuit(t *testing.T) {
	model := newTestModel(t, testProvider(), &fakePlayer{})

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if command == nil {
		t.Fatal("Esc should quit")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Error("Esc command should produce tea.QuitMsg")
	}

	_, command = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("Ctrl-C should quit")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Error("Ctrl-C command should produce tea.QuitMsg")
	}
}

func TestStatusRecordMessage(t *testing.T) {
	model := newTestModel(t, testProvider(), &fakePlayer{})

	updated, _ := model.Update(statusRecordMsg{Summary: "token refresh failed (attempt=3)", Level: slog.LevelWarn})
	model = updated.(Model)

	if model.statusText != "token refresh failed (attempt=3)" {
		t.Errorf("status = %q", model.statusText)
	}
	if model.statusError {
		t.Error("a warning record should not style the status as an error")
	}
	view := model.View()
	if !strings.Contains(view, "token refresh failed") {
		t.Error("status bar should show the log record summary")
	}

	updated, _ = model.Update(statusRecordMsg{Summary: "listing impossible", Level: slog.LevelError})
	model = updated.(Model)
	if !model.statusError {
		t.Error("an error record should style the status as an error")
	}
}
