// Package youtube provides video discovery and metadata enrichment through
// the YouTube Data API v3.
package youtube

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/youtube/v3"

	"ytnotify/config"
	"ytnotify/retry"
)

const (
	// pageSize is the upstream maximum page size.
	pageSize = 50
	// maxPlaylistPages bounds the API-call budget for channel/playlist runs.
	maxPlaylistPages = 3
	// maxSearchPages bounds the API-call budget for search runs.
	maxSearchPages = 5
	// dataAPIRPS is a conservative request rate against the Data API.
	dataAPIRPS = 1.0
)

// Candidate is a video discovered by the source adapter, carrying only the
// partial snippet available from the listing endpoints.
type Candidate struct {
	// ID is the YouTube video ID.
	ID string
	// Title is the snippet title.
	Title string
	// PublishedAt is the snippet publish time.
	PublishedAt time.Time
	// Position is the playlist position, playlist modes only.
	Position int64
}

// PlaylistInfo describes the playlist being listed.
type PlaylistInfo struct {
	Title        string
	ChannelTitle string
}

// Source fetches a bounded, ordered page of candidate videos for one of the
// three discovery modes.
type Source struct {
	service *youtube.Service
	cfg     *config.Config
	limiter *rate.Limiter
	retry   retry.Config
	log     *slog.Logger
}

// NewSource creates a source adapter for the configured mode.
func NewSource(service *youtube.Service, cfg *config.Config, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{
		service: service,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(dataAPIRPS), 1),
		retry:   retry.DefaultConfig(),
		log:     log,
	}
}

// UploadsPlaylistID derives the implicit uploads playlist ID from a channel ID.
// Channel IDs start with "UC"; the uploads playlist swaps that prefix for "UU".
func UploadsPlaylistID(channelID string) string {
	if len(channelID) < 2 {
		return channelID
	}
	return "UU" + channelID[2:]
}

// List fetches candidates for the configured mode, capped at the run's result
// cap and bounded by the per-mode page ceiling.
func (s *Source) List(ctx context.Context) ([]Candidate, error) {
	limit := s.cfg.ResultCap()

	switch s.cfg.Mode {
	case config.ModeChannels:
		return s.listPlaylist(ctx, UploadsPlaylistID(s.cfg.ChannelID), limit)
	case config.ModePlaylists:
		info, err := s.playlistInfo(ctx, s.cfg.PlaylistID)
		if err != nil {
			return nil, err
		}
		s.log.Info("listing playlist",
			slog.String("playlist", info.Title),
			slog.String("owner", info.ChannelTitle))

		items, err := s.listPlaylist(ctx, s.cfg.PlaylistID, limit)
		if err != nil {
			return nil, err
		}
		return sortCandidates(items, s.cfg.PlaylistSort), nil
	case config.ModeSearch:
		return s.listSearch(ctx, s.cfg.SearchKeyword, limit)
	}
	// Unreachable: config.Validate rejects unknown modes.
	return nil, &APIError{Op: "list", Err: ErrNotFound}
}

// listPlaylist pages through playlistItems until the cap, the last page, or
// the page ceiling is reached. Private items are skipped.
func (s *Source) listPlaylist(ctx context.Context, playlistID string, limit int) ([]Candidate, error) {
	var items []Candidate
	pageToken := ""

	for page := 0; page < maxPlaylistPages && len(items) < limit; page++ {
		var resp *youtube.PlaylistItemListResponse
		err := retry.Do(ctx, s.retry, apiErrorClassifier, func(ctx context.Context) error {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
			call := s.service.PlaylistItems.List([]string{"snippet", "contentDetails", "status"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx)

			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			return nil, wrapAPIError("playlist_items", playlistID, err)
		}

		for _, item := range resp.Items {
			if item.Status != nil && item.Status.PrivacyStatus == "private" {
				continue
			}
			if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
				continue
			}
			c := Candidate{ID: item.ContentDetails.VideoId}
			if item.Snippet != nil {
				c.Title = item.Snippet.Title
				c.Position = item.Snippet.Position
				if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					c.PublishedAt = t
				}
			}
			items = append(items, c)
			if len(items) >= limit {
				break
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return items, nil
}

// listSearch pages through keyword search results, newest first.
func (s *Source) listSearch(ctx context.Context, keyword string, limit int) ([]Candidate, error) {
	var items []Candidate
	pageToken := ""

	for page := 0; page < maxSearchPages && len(items) < limit; page++ {
		var resp *youtube.SearchListResponse
		err := retry.Do(ctx, s.retry, apiErrorClassifier, func(ctx context.Context) error {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
			call := s.service.Search.List([]string{"snippet"}).
				Q(keyword).
				Type("video").
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx)

			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			return nil, wrapAPIError("search", keyword, err)
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			c := Candidate{ID: item.Id.VideoId}
			if item.Snippet != nil {
				c.Title = item.Snippet.Title
				if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					c.PublishedAt = t
				}
			}
			items = append(items, c)
			if len(items) >= limit {
				break
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return items, nil
}

// playlistInfo fetches the playlist title and owner once per run.
func (s *Source) playlistInfo(ctx context.Context, playlistID string) (*PlaylistInfo, error) {
	var resp *youtube.PlaylistListResponse
	err := retry.Do(ctx, s.retry, apiErrorClassifier, func(ctx context.Context) error {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		call := s.service.Playlists.List([]string{"snippet"}).
			Id(playlistID).
			Context(ctx)

		var err error
		resp, err = call.Do()
		return err
	})
	if err != nil {
		return nil, wrapAPIError("playlists", playlistID, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, wrapAPIError("playlists", playlistID, ErrNotFound)
	}

	sn := resp.Items[0].Snippet
	return &PlaylistInfo{Title: sn.Title, ChannelTitle: sn.ChannelTitle}, nil
}

// sortCandidates reorders playlist results per the configured policy.
func sortCandidates(items []Candidate, policy config.SortPolicy) []Candidate {
	switch policy {
	case config.SortReverse:
		out := make([]Candidate, len(items))
		for i, c := range items {
			out[len(items)-1-i] = c
		}
		return out
	case config.SortDateNewest:
		out := append([]Candidate(nil), items...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		})
		return out
	case config.SortDateOldest:
		out := append([]Candidate(nil), items...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.Before(out[j].PublishedAt)
		})
		return out
	case config.SortPosition:
		out := append([]Candidate(nil), items...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Position < out[j].Position
		})
		return out
	default:
		// API order.
		return items
	}
}
