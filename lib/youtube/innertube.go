// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	// defaultBaseURL is the Innertube API root. Tests override it with
	// an httptest server.
	defaultBaseURL = "https://www.youtube.com/youtubei/v1"

	// channelSearchParams is the protobuf filter that restricts search
	// results to channels.
	channelSearchParams = "EgIQAg=="

	// videosTabParams selects a channel's Videos tab in a browse call.
	videosTabParams = "EgZ2aWRlb3M="

	// defaultClientName and defaultClientVersion identify the web
	// client to the API.
	defaultClientName    = "WEB"
	defaultClientVersion = "2.20240101.00.00"

	// defaultMaxPages bounds continuation-following when listing a
	// channel's videos. One page is roughly 30 entries.
	defaultMaxPages = 4

	requestTimeout = 15 * time.Second
)

// InnertubeClient implements [Provider] against YouTube's internal
// Innertube API. Safe for concurrent use.
type InnertubeClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	region     string
	language   string
	maxPages   int
}

// InnertubeOption configures an InnertubeClient.
type InnertubeOption func(*InnertubeClient)

// WithBaseURL overrides the API root. Used by tests.
func WithBaseURL(baseURL string) InnertubeOption {
	return func(client *InnertubeClient) {
		client.baseURL = baseURL
	}
}

// WithRegion sets the gl/hl request context fields.
func WithRegion(region, language string) InnertubeOption {
	return func(client *InnertubeClient) {
		if region != "" {
			client.region = region
		}
		if language != "" {
			client.language = language
		}
	}
}

// WithMaxPages bounds how many continuation pages ChannelVideos
// follows. Values below 1 are ignored.
func WithMaxPages(pages int) InnertubeOption {
	return func(client *InnertubeClient) {
		if pages >= 1 {
			client.maxPages = pages
		}
	}
}

// NewInnertubeClient creates a client with the given logger for
// diagnostics. The logger must not be nil. Inside a running TUI its
// records go to the status bar, not stderr.
func NewInnertubeClient(logger *slog.Logger, options ...InnertubeOption) *InnertubeClient {
	client := &InnertubeClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
		baseURL:    defaultBaseURL,
		region:     "US",
		language:   "en",
		maxPages:   defaultMaxPages,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// browseRequest is the shared request body for the search and browse
// endpoints.
type browseRequest struct {
	Context      clientContext `json:"context"`
	Query        string        `json:"query,omitempty"`
	BrowseID     string        `json:"browseId,omitempty"`
	Params       string        `json:"params,omitempty"`
	Continuation string        `json:"continuation,omitempty"`
}

type clientContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

// SearchChannels implements [Searcher]. It queries the search endpoint
// with the channel filter and maps channelRenderer entries to Channels.
func (client *InnertubeClient) SearchChannels(ctx context.Context, query string) ([]Channel, error) {
	request := browseRequest{
		Context: client.requestContext(),
		Query:   query,
		Params:  channelSearchParams,
	}

	var response searchResponse
	if err := client.post(ctx, "/search", request, &response); err != nil {
		return nil, fmt.Errorf("channel search: %w", err)
	}

	results := response.searchResults()
	channels := ChannelsFromResults(results)
	client.logger.Debug("channel search complete",
		"query", query,
		"results", len(results),
		"channels", len(channels),
	)
	return channels, nil
}

// ChannelVideos implements [VideoLister]. It browses the channel's
// Videos tab and follows continuation tokens up to the configured page
// limit.
func (client *InnertubeClient) ChannelVideos(ctx context.Context, channelID string) ([]Video, error) {
	request := browseRequest{
		Context:  client.requestContext(),
		BrowseID: channelID,
		Params:   videosTabParams,
	}

	var response browseResponse
	if err := client.post(ctx, "/browse", request, &response); err != nil {
		return nil, fmt.Errorf("channel videos: %w", err)
	}

	records, continuation := response.videoItems()
	for page := 1; continuation != "" && page < client.maxPages; page++ {
		request := browseRequest{
			Context:      client.requestContext(),
			Continuation: continuation,
		}
		var next browseResponse
		if err := client.post(ctx, "/browse", request, &next); err != nil {
			// Partial results are better than none; the first page
			// already rendered something useful.
			client.logger.Warn("continuation fetch failed",
				"channel", channelID, "page", page, "error", err)
			break
		}
		var more []VideoRecord
		more, continuation = next.videoItems()
		records = append(records, more...)
	}

	return VideosFromRecords(records), nil
}

func (client *InnertubeClient) requestContext() clientContext {
	return clientContext{
		Client: innertubeClient{
			ClientName:    defaultClientName,
			ClientVersion: defaultClientVersion,
			HL:            client.language,
			GL:            client.region,
		},
	}
}

// post sends a JSON request to the given endpoint path and decodes the
// JSON response into out.
func (client *InnertubeClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", response.Status)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// The response decoding below names only the slices of the Innertube
// payload tree that tubeview reads. Everything else is ignored by the
// JSON decoder.

type searchResponse struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer *struct {
							Contents []searchItem `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type searchItem struct {
	ChannelRenderer *struct {
		ChannelID string `json:"channelId"`
		Title     struct {
			SimpleText string `json:"simpleText"`
		} `json:"title"`
		DescriptionSnippet *struct {
			Runs []struct {
				Text string `json:"text"`
			} `json:"runs"`
		} `json:"descriptionSnippet"`
	} `json:"channelRenderer"`
	VideoRenderer *struct {
		VideoID string `json:"videoId"`
	} `json:"videoRenderer"`
}

// searchResults flattens the decoded search payload into boundary
// records. Non-channel items keep their type so the mapping layer's
// channel filter stays meaningful.
func (response *searchResponse) searchResults() []SearchResult {
	var results []SearchResult
	sections := response.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
	for _, section := range sections {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, item := range section.ItemSectionRenderer.Contents {
			switch {
			case item.ChannelRenderer != nil:
				renderer := item.ChannelRenderer
				result := SearchResult{
					Type:  "channel",
					ID:    renderer.ChannelID,
					Title: renderer.Title.SimpleText,
				}
				if renderer.DescriptionSnippet != nil {
					for _, run := range renderer.DescriptionSnippet.Runs {
						result.DescriptionSnippet = append(result.DescriptionSnippet, SnippetFragment{Text: run.Text})
					}
				}
				results = append(results, result)
			case item.VideoRenderer != nil:
				results = append(results, SearchResult{
					Type: "video",
					ID:   item.VideoRenderer.VideoID,
				})
			}
		}
	}
	return results
}

type browseResponse struct {
	Contents *struct {
		TwoColumnBrowseResultsRenderer struct {
			Tabs []struct {
				TabRenderer *struct {
					Content *struct {
						RichGridRenderer *struct {
							Contents []gridItem `json:"contents"`
						} `json:"richGridRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
	OnResponseReceivedActions []struct {
		AppendContinuationItemsAction *struct {
			ContinuationItems []gridItem `json:"continuationItems"`
		} `json:"appendContinuationItemsAction"`
	} `json:"onResponseReceivedActions"`
}

type gridItem struct {
	RichItemRenderer *struct {
		Content struct {
			VideoRenderer *videoRenderer `json:"videoRenderer"`
		} `json:"content"`
	} `json:"richItemRenderer"`
	ContinuationItemRenderer *struct {
		ContinuationEndpoint struct {
			ContinuationCommand struct {
				Token string `json:"token"`
			} `json:"continuationCommand"`
		} `json:"continuationEndpoint"`
	} `json:"continuationItemRenderer"`
}

type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"title"`
	LengthText struct {
		SimpleText string `json:"simpleText"`
	} `json:"lengthText"`
	NavigationEndpoint struct {
		CommandMetadata struct {
			WebCommandMetadata struct {
				URL string `json:"url"`
			} `json:"webCommandMetadata"`
		} `json:"commandMetadata"`
	} `json:"navigationEndpoint"`
}

// videoItems flattens one browse page (initial or continuation) into
// boundary records and returns the continuation token for the next
// page, if any.
func (response *browseResponse) videoItems() ([]VideoRecord, string) {
	var items []gridItem
	if response.Contents != nil {
		for _, tab := range response.Contents.TwoColumnBrowseResultsRenderer.Tabs {
			if tab.TabRenderer == nil || tab.TabRenderer.Content == nil {
				continue
			}
			if grid := tab.TabRenderer.Content.RichGridRenderer; grid != nil {
				items = append(items, grid.Contents...)
			}
		}
	}
	for _, action := range response.OnResponseReceivedActions {
		if action.AppendContinuationItemsAction != nil {
			items = append(items, action.AppendContinuationItemsAction.ContinuationItems...)
		}
	}

	var records []VideoRecord
	continuation := ""
	for _, item := range items {
		if item.ContinuationItemRenderer != nil {
			continuation = item.ContinuationItemRenderer.ContinuationEndpoint.ContinuationCommand.Token
			continue
		}
		if item.RichItemRenderer == nil || item.RichItemRenderer.Content.VideoRenderer == nil {
			continue
		}
		renderer := item.RichItemRenderer.Content.VideoRenderer
		record := VideoRecord{
			ID:       renderer.VideoID,
			Link:     renderer.NavigationEndpoint.CommandMetadata.WebCommandMetadata.URL,
			Duration: renderer.LengthText.SimpleText,
		}
		if len(renderer.Title.Runs) > 0 {
			record.Title = renderer.Title.Runs[0].Text
		}
		records = append(records, record)
	}
	return records, continuation
}
