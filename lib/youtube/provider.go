// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package youtube

import (
	"context"
	"strings"
)

// Channel is a content source returned by search. Immutable once
// fetched; the UI replaces its channel list wholesale on each search.
type Channel struct {
	// ID is the opaque channel identifier (a UC… browse ID).
	ID string
	// Title is the display name.
	Title string
	// Description is the first fragment of the search snippet, or
	// empty when the API returned none.
	Description string
}

// Video is a playable item belonging to a channel.
type Video struct {
	// ID is the opaque video identifier.
	ID string
	// Title is the display name.
	Title string
	// DurationSeconds is the video length. Zero when the source
	// duration was absent or malformed.
	DurationSeconds int
}

// Searcher finds channels matching a free-text query.
type Searcher interface {
	// SearchChannels returns channels matching the query, in result
	// order. A failed call returns an error whose message is surfaced
	// verbatim in the UI status bar.
	SearchChannels(ctx context.Context, query string) ([]Channel, error)
}

// VideoLister enumerates the videos of a channel.
type VideoLister interface {
	// ChannelVideos returns the videos of the given channel, newest
	// first as delivered by the API.
	ChannelVideos(ctx context.Context, channelID string) ([]Video, error)
}

// Provider is the full search/metadata collaborator the UI depends on.
type Provider interface {
	Searcher
	VideoLister
}

// SnippetFragment is one piece of a search result's description
// snippet. Only the text is used; highlight markers are ignored.
type SnippetFragment struct {
	Text string
}

// SearchResult is the boundary record for one entry of a search
// response. Type distinguishes channels from videos and playlists;
// every other field is optional and defaulted during mapping.
type SearchResult struct {
	Type               string
	ID                 string
	Title              string
	DescriptionSnippet []SnippetFragment
}

// VideoRecord is the boundary record for one entry of a channel's
// video listing. ID may be absent when only a watch link is known;
// Duration is a colon-separated string like "12:34" or absent.
type VideoRecord struct {
	ID       string
	Link     string
	Title    string
	Duration string
}

// ChannelsFromResults filters search results to channel-typed entries
// and maps them to Channels. A missing or empty description snippet
// yields an empty description; it is never an error.
func ChannelsFromResults(results []SearchResult) []Channel {
	var channels []Channel
	for _, result := range results {
		if result.Type != "channel" {
			continue
		}
		description := ""
		if len(result.DescriptionSnippet) > 0 {
			description = result.DescriptionSnippet[0].Text
		}
		channels = append(channels, Channel{
			ID:          result.ID,
			Title:       result.Title,
			Description: description,
		})
	}
	return channels
}

// VideosFromRecords maps raw listing records to Videos. The video id
// comes from the record's ID field or, failing that, the trailing
// segment of its Link (after the last "=" or "/"). Records with
// neither an id nor a title are dropped.
func VideosFromRecords(records []VideoRecord) []Video {
	var videos []Video
	for _, record := range records {
		id := record.ID
		if id == "" {
			id = idFromLink(record.Link)
		}
		if id == "" || record.Title == "" {
			continue
		}
		videos = append(videos, Video{
			ID:              id,
			Title:           record.Title,
			DurationSeconds: ParseDuration(record.Duration),
		})
	}
	return videos
}

// idFromLink extracts a video id from a watch link. Links look like
// "https://www.youtube.com/watch?v=abc123" (take after the last "=")
// or "https://youtu.be/abc123" (take after the last "/").
func idFromLink(link string) string {
	if link == "" {
		return ""
	}
	if index := strings.LastIndex(link, "="); index >= 0 {
		return link[index+1:]
	}
	if index := strings.LastIndex(link, "/"); index >= 0 {
		return link[index+1:]
	}
	return link
}
