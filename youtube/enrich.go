package youtube

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/youtube/v3"

	"ytnotify/config"
	"ytnotify/retry"
	"ytnotify/storage"
)

// unknownCategory is the placeholder for unresolvable category IDs.
const unknownCategory = "Unknown"

// Enricher turns candidate video IDs into full records by fetching details
// in batches. Category names and channel avatars are cached for the
// enricher's lifetime to avoid repeat lookups within a run.
type Enricher struct {
	service *youtube.Service
	lang    config.Language
	source  string
	retry   retry.Config
	log     *slog.Logger

	categories map[string]string
	avatars    map[string]string
}

// NewEnricher creates an enricher. source tags each record with the
// discovery mode that found it.
func NewEnricher(service *youtube.Service, lang config.Language, source string, log *slog.Logger) *Enricher {
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		service:    service,
		lang:       lang,
		source:     source,
		retry:      retry.DefaultConfig(),
		log:        log,
		categories: make(map[string]string),
		avatars:    make(map[string]string),
	}
}

// Fetch retrieves full details for the given video IDs in chunks of up to 50
// (the upstream batch limit). IDs the API does not return are skipped with a
// warning.
func (e *Enricher) Fetch(ctx context.Context, ids []string) ([]*storage.Video, error) {
	var videos []*storage.Video

	for start := 0; start < len(ids); start += pageSize {
		end := start + pageSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		var resp *youtube.VideoListResponse
		err := retry.Do(ctx, e.retry, apiErrorClassifier, func(ctx context.Context) error {
			call := e.service.Videos.List([]string{"snippet", "contentDetails", "statistics", "liveStreamingDetails"}).
				Id(chunk...).
				Context(ctx)

			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			return nil, wrapAPIError("videos", strings.Join(chunk, ","), err)
		}

		returned := make(map[string]bool, len(resp.Items))
		for _, item := range resp.Items {
			returned[item.Id] = true
			videos = append(videos, e.buildRecord(ctx, item))
		}
		for _, id := range chunk {
			if !returned[id] {
				e.log.Warn("video details unavailable", slog.String("video_id", id))
			}
		}
	}

	return videos, nil
}

// buildRecord assembles a storage record from an API video resource.
func (e *Enricher) buildRecord(ctx context.Context, item *youtube.Video) *storage.Video {
	v := &storage.Video{
		VideoID: item.Id,
		Source:  e.source,
	}

	if sn := item.Snippet; sn != nil {
		v.ChannelID = sn.ChannelId
		v.ChannelTitle = sn.ChannelTitle
		v.Title = sn.Title
		v.Description = sn.Description
		v.CategoryID = sn.CategoryId
		v.CategoryName = e.CategoryName(ctx, sn.CategoryId)
		v.Tags = strings.Join(sn.Tags, ",")
		v.LiveBroadcastContent = sn.LiveBroadcastContent
		v.ThumbnailURL = bestThumbnail(sn.Thumbnails)
		if t, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
			v.PublishedAt = t
		}
	}
	if cd := item.ContentDetails; cd != nil {
		v.Duration = FormatISODuration(cd.Duration, e.lang)
		v.Caption = cd.Caption
	}
	if st := item.Statistics; st != nil {
		v.ViewCount = int64(st.ViewCount)
		v.LikeCount = int64(st.LikeCount)
		v.CommentCount = int64(st.CommentCount)
	}
	if ls := item.LiveStreamingDetails; ls != nil {
		v.ScheduledStartTime = ls.ScheduledStartTime
	}

	return v
}

// CategoryName resolves a category ID to its display name, caching results.
// Unresolvable categories degrade to "Unknown" rather than failing.
func (e *Enricher) CategoryName(ctx context.Context, categoryID string) string {
	if categoryID == "" {
		return unknownCategory
	}
	if name, ok := e.categories[categoryID]; ok {
		return name
	}

	var resp *youtube.VideoCategoryListResponse
	err := retry.Do(ctx, e.retry, apiErrorClassifier, func(ctx context.Context) error {
		call := e.service.VideoCategories.List([]string{"snippet"}).
			Id(categoryID).
			Context(ctx)

		var err error
		resp, err = call.Do()
		return err
	})
	if err != nil || len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		e.log.Warn("category lookup failed", slog.String("category_id", categoryID))
		e.categories[categoryID] = unknownCategory
		return unknownCategory
	}

	name := resp.Items[0].Snippet.Title
	e.categories[categoryID] = name
	return name
}

// ChannelAvatar resolves a channel's avatar URL, caching results.
// Failures degrade to an empty string.
func (e *Enricher) ChannelAvatar(ctx context.Context, channelID string) string {
	if channelID == "" {
		return ""
	}
	if url, ok := e.avatars[channelID]; ok {
		return url
	}

	var resp *youtube.ChannelListResponse
	err := retry.Do(ctx, e.retry, apiErrorClassifier, func(ctx context.Context) error {
		call := e.service.Channels.List([]string{"snippet"}).
			Id(channelID).
			Context(ctx)

		var err error
		resp, err = call.Do()
		return err
	})
	if err != nil || len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		e.log.Warn("channel avatar lookup failed", slog.String("channel_id", channelID))
		e.avatars[channelID] = ""
		return ""
	}

	url := bestThumbnail(resp.Items[0].Snippet.Thumbnails)
	e.avatars[channelID] = url
	return url
}

// bestThumbnail picks the highest resolution thumbnail available.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
