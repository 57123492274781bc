package storage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS videos (
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
	view_count             INTEGER,
	like_count             INTEGER,
	comment_count          INTEGER,
	source                 TEXT
)`

// SQLiteStore implements Store on a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and ensures the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	s := &SQLiteStore{db: db}
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the videos table if it does not exist.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return &StorageError{Op: "init", Err: err}
	}
	return nil
}

// Reset drops the videos table and recreates it empty.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS videos`); err != nil {
		return &StorageError{Op: "reset", Err: err}
	}
	return s.Init(ctx)
}

// Exists reports whether a video ID has already been delivered.
func (s *SQLiteStore) Exists(ctx context.Context, videoID string) (bool, error) {
	if videoID == "" {
		return false, &StorageError{Op: "exists", Err: ErrInvalidInput}
	}

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM videos WHERE video_id = ?`, videoID).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, &StorageError{Op: "exists", ID: videoID, Err: err}
	}
	return true, nil
}

// Upsert inserts or replaces the record keyed by its video ID.
func (s *SQLiteStore) Upsert(ctx context.Context, v *Video) error {
	if v == nil || v.VideoID == "" {
		return &StorageError{Op: "upsert", Err: ErrInvalidInput}
	}

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO videos
		(video_id, channel_id, channel_title, title, description, published_at,
		 thumbnail_url, category_id, category_name, duration, tags,
		 live_broadcast_content, scheduled_start_time, caption,
		 view_count, like_count, comment_count, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n); err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
