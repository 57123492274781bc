package ytnotify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"ytnotify/config"
	"ytnotify/filter"
	"ytnotify/storage"
	"ytnotify/youtube"
)

// Lister discovers candidate videos for the configured mode.
type Lister interface {
	List(ctx context.Context) ([]youtube.Candidate, error)
}

// MetadataFetcher resolves full video records and channel avatars.
type MetadataFetcher interface {
	Fetch(ctx context.Context, ids []string) ([]*storage.Video, error)
	ChannelAvatar(ctx context.Context, channelID string) string
}

// Notifier delivers the notifications for one accepted video.
type Notifier interface {
	Publish(ctx context.Context, v *storage.Video, channelAvatar string) error
}

// Result summarizes one pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Discovered counts candidates returned by the source.
	Discovered int
	// New counts candidates not yet present in the store.
	New int
	// Accepted counts videos that passed the filters.
	Accepted int
	// Published counts videos stored and announced.
	Published int
	// Stored is the store row count after the run, -1 when unavailable.
	Stored int64
}

// Pipeline runs one discover, dedup, enrich, filter, persist and announce
// cycle. It processes videos sequentially so notification order follows
// publish time.
type Pipeline struct {
	cfg       *config.Config
	store     storage.Store
	source    Lister
	enricher  MetadataFetcher
	publisher Notifier
	log       *slog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

// NewPipeline assembles a pipeline from its components.
func NewPipeline(cfg *config.Config, store storage.Store, source Lister, enricher MetadataFetcher, publisher Notifier, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:       cfg,
		store:     store,
		source:    source,
		enricher:  enricher,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Run executes one cycle. Listing and enrichment errors abort the run;
// per-video store and delivery failures are logged and skipped. The
// completion log line is emitted on every return path.
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	runID := uuid.NewString()
	log := p.log.With(slog.String("run_id", runID))
	result = &Result{RunID: runID, Stored: -1}

	defer func() {
		log.Info("run finished",
			slog.Int("discovered", result.Discovered),
			slog.Int("new", result.New),
			slog.Int("published", result.Published),
			slog.Bool("ok", err == nil))
	}()

	if p.cfg.InitializeRun {
		log.Info("initialize run, resetting store")
		if rerr := p.store.Reset(ctx); rerr != nil {
			return result, fmt.Errorf("reset store: %w", rerr)
		}
	}

	candidates, err := p.source.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list videos: %w", err)
	}
	result.Discovered = len(candidates)
	log.Info("discovered candidates", slog.Int("count", len(candidates)))

	unseen := p.dedup(ctx, log, candidates)
	result.New = len(unseen)
	if len(unseen) == 0 {
		log.Info("no new videos")
		result.Stored = p.storedCount(ctx, log)
		return result, nil
	}

	videos, err := p.enricher.Fetch(ctx, unseen)
	if err != nil {
		return result, fmt.Errorf("fetch metadata: %w", err)
	}

	accepted := p.applyFilters(log, videos)
	result.Accepted = len(accepted)

	// Oldest first, so notifications arrive in publish order.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].PublishedAt.Before(accepted[j].PublishedAt)
	})

	for _, v := range accepted {
		if uerr := p.store.Upsert(ctx, v); uerr != nil {
			// Not persisted means it would repeat next run, so don't
			// announce it now.
			log.Error("store video failed, skipping notification",
				slog.String("video_id", v.VideoID),
				slog.Any("error", uerr))
			continue
		}

		avatar := p.enricher.ChannelAvatar(ctx, v.ChannelID)
		if perr := p.publisher.Publish(ctx, v, avatar); perr != nil {
			log.Error("notification failed",
				slog.String("video_id", v.VideoID),
				slog.Any("error", perr))
			continue
		}

		result.Published++
		log.Info("video announced",
			slog.String("video_id", v.VideoID),
			slog.String("title", v.Title))
	}

	result.Stored = p.storedCount(ctx, log)
	return result, nil
}

// dedup returns the candidate IDs not present in the store. A store lookup
// failure skips that candidate for this run.
func (p *Pipeline) dedup(ctx context.Context, log *slog.Logger, candidates []youtube.Candidate) []string {
	var unseen []string
	for _, c := range candidates {
		seen, err := p.store.Exists(ctx, c.ID)
		if err != nil {
			log.Warn("store lookup failed, skipping candidate",
				slog.String("video_id", c.ID),
				slog.Any("error", err))
			continue
		}
		if !seen {
			unseen = append(unseen, c.ID)
		}
	}
	return unseen
}

// applyFilters drops videos outside the date window or failing the keyword
// expression. The date filter is skipped on initialize runs so the backfill
// captures history.
func (p *Pipeline) applyFilters(log *slog.Logger, videos []*storage.Video) []*storage.Video {
	var dates filter.DateRange
	if !p.cfg.InitializeRun {
		dates = filter.ParseDateRange(p.cfg.DateFilter, p.now())
	}
	terms := filter.ParseKeywords(p.cfg.KeywordFilter)

	accepted := make([]*storage.Video, 0, len(videos))
	for _, v := range videos {
		if !dates.Empty() && !dates.Match(v.PublishedAt) {
			log.Debug("rejected by date filter", slog.String("video_id", v.VideoID))
			continue
		}
		if len(terms) > 0 && !filter.MatchKeywords(v.Title, terms) {
			log.Debug("rejected by keyword filter", slog.String("video_id", v.VideoID))
			continue
		}
		accepted = append(accepted, v)
	}
	return accepted
}

func (p *Pipeline) storedCount(ctx context.Context, log *slog.Logger) int64 {
	n, err := p.store.Count(ctx)
	if err != nil {
		log.Warn("store count failed", slog.Any("error", err))
		return -1
	}
	return n
}
