// Package storage provides persistence for delivered video records.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common storage conditions.
var (
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("storage: not found")
	// ErrInvalidInput indicates invalid or malformed input was provided.
	ErrInvalidInput = errors.New("storage: invalid input")
)

// StorageError wraps storage errors with operation context.
// Use errors.As() to extract this error type and get operation details:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s: %v\n", storErr.Op, storErr.ID, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("init", "reset", "exists", "upsert", "count").
	Op string
	// ID is the video ID if applicable.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// Store is the persistence interface for delivered video records.
// A record's presence is the deduplication gate: once a video ID is stored,
// it is never delivered again.
type Store interface {
	// Init creates the schema if it does not exist.
	Init(ctx context.Context) error
	// Reset drops all records and recreates the schema.
	// Used only on initialize runs.
	Reset(ctx context.Context) error
	// Exists reports whether a video ID has already been delivered.
	Exists(ctx context.Context, videoID string) (bool, error)
	// Upsert inserts or replaces the record keyed by its video ID.
	Upsert(ctx context.Context, v *Video) error
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
	// Close releases any resources held by the store.
	Close() error
}
