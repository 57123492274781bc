package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "videos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testVideo(id string) *Video {
	return &Video{
		VideoID:      id,
		ChannelID:    "UCabc",
		ChannelTitle: "Test Channel",
		Title:        "Test Video",
		Description:  "A description",
		PublishedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		ThumbnailURL: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg",
		CategoryID:   "10",
		CategoryName: "Music",
		Duration:     "1h 5m 30s",
		Tags:         "music,live",
		Caption:      "true",
		ViewCount:    1234,
		LikeCount:    56,
		CommentCount: 7,
		Source:       "channels",
	}
}

func TestSQLiteStore_ExistsAfterUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "vid1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Upsert(ctx, testVideo("vid1")))

	ok, err = s.Exists(ctx, "vid1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteStore_UpsertIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v := testVideo("vid1")
	require.NoError(t, s.Upsert(ctx, v))

	// Second upsert with the same ID overwrites rather than duplicates.
	v.Title = "Updated Title"
	require.NoError(t, s.Upsert(ctx, v))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLiteStore_Count(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Upsert(ctx, testVideo(id)))
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSQLiteStore_ResetDropsAllRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testVideo("old1")))
	require.NoError(t, s.Upsert(ctx, testVideo("old2")))

	require.NoError(t, s.Reset(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// Count after reset reflects exactly the videos inserted afterwards.
	require.NoError(t, s.Upsert(ctx, testVideo("new1")))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLiteStore_InvalidInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Exists(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = s.Upsert(ctx, &Video{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var storErr *StorageError
	require.True(t, errors.As(err, &storErr))
	assert.Equal(t, "upsert", storErr.Op)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "videos.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(ctx, testVideo("vid1")))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	ok, err := s.Exists(ctx, "vid1")
	require.NoError(t, err)
	assert.True(t, ok)
}
