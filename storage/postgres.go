package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS videos (
	video_id               TEXT PRIMARY KEY,
	channel_id             TEXT,
	channel_title          TEXT,
	title                  TEXT,
	description            TEXT,
	published_at           TEXT,
	thumbnail_url          TEXT,
	category_id            TEXT,
	category_name          TEXT,
	duration               TEXT,
	tags                   TEXT,
	live_broadcast_content TEXT,
	scheduled_start_time   TEXT,
	caption                TEXT,
	view_count             BIGINT,
	like_count             BIGINT,
	comment_count          BIGINT,
	source                 TEXT
)`

// PostgresStore implements Store on a Postgres database.
// Selected when DATABASE_URL is configured; useful when the run executes on
// ephemeral infrastructure where a local file would not survive.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to the given DSN and ensures the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	s := &PostgresStore{db: db}
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the videos table if it does not exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, postgresSchema); err != nil {
		return &StorageError{Op: "init", Err: err}
	}
	return nil
}

// Reset drops the videos table and recreates it empty.
func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS videos`); err != nil {
		return &StorageError{Op: "reset", Err: err}
	}
	return s.Init(ctx)
}

// Exists reports whether a video ID has already been delivered.
func (s *PostgresStore) Exists(ctx context.Context, videoID string) (bool, error) {
	if videoID == "" {
		return false, &StorageError{Op: "exists", Err: ErrInvalidInput}
	}

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM videos WHERE video_id = $1`, videoID).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, &StorageError{Op: "exists", ID: videoID, Err: err}
	}
	return true, nil
}

// Upsert inserts or updates the record keyed by its video ID.
func (s *PostgresStore) Upsert(ctx context.Context, v *Video) error {
	if v == nil || v.VideoID == "" {
		return &StorageError{Op: "upsert", Err: ErrInvalidInput}
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO videos
		(video_id, channel_id, channel_title, title, description, published_at,
		 thumbnail_url, category_id, category_name, duration, tags,
		 live_broadcast_content, scheduled_start_time, caption,
		 view_count, like_count, comment_count, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			channel_title = EXCLUDED.channel_title,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_at = EXCLUDED.published_at,
			thumbnail_url = EXCLUDED.thumbnail_url,
			category_id = EXCLUDED.category_id,
			category_name = EXCLUDED.category_name,
			duration = EXCLUDED.duration,
			tags = EXCLUDED.tags,
			live_broadcast_content = EXCLUDED.live_broadcast_content,
			scheduled_start_time = EXCLUDED.scheduled_start_time,
			caption = EXCLUDED.caption,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			source = EXCLUDED.source`,
		v.VideoID, v.ChannelID, v.ChannelTitle, v.Title, v.Description,
		v.PublishedAt.UTC().Format(time.RFC3339),
		v.ThumbnailURL, v.CategoryID, v.CategoryName, v.Duration, v.Tags,
		v.LiveBroadcastContent, v.ScheduledStartTime, v.Caption,
		v.ViewCount, v.LikeCount, v.CommentCount, v.Source)
	if err != nil {
		return &StorageError{Op: "upsert", ID: v.VideoID, Err: err}
	}
	return nil
}

// Count returns the number of stored records.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n); err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return n, nil
}

// Close releases the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
