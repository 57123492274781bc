// Package ytnotify watches YouTube for new videos and announces them to
// Discord webhooks.
//
// It is built to run as a scheduled job: each run discovers candidate videos
// for one configured mode, drops everything already seen, enriches the rest
// with full metadata, applies the configured filters, persists the survivors
// and posts a notification per video.
//
// Overview
//
// A run is driven by the Pipeline type:
//
//	ctx := context.Background()
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := ytnotify.NewPipeline(cfg, store, source, enricher, publisher, logger)
//	result, err := p.Run(ctx)
//
// Discovery modes:
//
//   - channels: recent uploads of a channel, via its uploads playlist
//   - playlists: items of a playlist, with a configurable ordering
//   - search: keyword search results, newest first
//
// Configuration
//
// All settings come from environment variables:
//
//   - YOUTUBE_API_KEY: Data API v3 key (required)
//   - YOUTUBE_MODE: channels, playlists or search
//   - YOUTUBE_CHANNEL_ID / YOUTUBE_PLAYLIST_ID / YOUTUBE_SEARCH_KEYWORD:
//     the mode's target
//   - YOUTUBE_PLAYLIST_SORT: default, reverse, date_newest, date_oldest
//     or position
//   - YOUTUBE_MAX_RESULTS / YOUTUBE_INIT_MAX_RESULTS: candidate caps
//   - INITIALIZE_MODE_YOUTUBE: reset the store and backfill
//   - DISCORD_WEBHOOK_YOUTUBE: webhook for the summary notification (required)
//   - DISCORD_WEBHOOK_YOUTUBE_DETAILVIEW / YOUTUBE_DETAILVIEW: detail embed
//     webhook and toggle
//   - DISCORD_USERNAME_YOUTUBE / DISCORD_AVATAR_YOUTUBE: display overrides
//   - DISCORD_RATE_LIMIT: webhook sends per rolling minute
//   - DATE_FILTER_YOUTUBE: e.g. "since:2024-01-01 until:2024-12-31 past:7d"
//   - ADVANCED_FILTER_YOUTUBE: e.g. `+golang -shorts "live stream"`
//   - LANGUAGE_YOUTUBE: English or Korean
//   - DB_PATH: SQLite file path, or DATABASE_URL for Postgres
//
// Error Handling
//
// All operations return errors that support the standard patterns:
//
//	if errors.Is(err, ytnotify.ErrQuotaExceeded) {
//		// Data API quota is exhausted, try again later.
//	}
//
//	var werr *ytnotify.WebhookError
//	if errors.As(err, &werr) {
//		fmt.Printf("delivery failed with status %d\n", werr.Status)
//	}
//
// Sub-packages
//
// For more control, use the sub-packages directly:
//
//   - youtube: discovery and metadata enrichment against the Data API
//   - discord: message formatting and webhook delivery
//   - filter: date window and keyword expression filters
//   - storage: the seen-video store (SQLite or Postgres)
//   - config: environment configuration
//   - retry: exponential backoff retry logic
package ytnotify
