package ytnotify

import (
	"ytnotify/discord"
	"ytnotify/storage"
	"ytnotify/youtube"
)

// Error types re-exported from sub-packages for convenient handling at the
// top level.
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytnotify.ErrQuotaExceeded) {
//		fmt.Println("Data API quota exhausted")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var apiErr *ytnotify.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed for %s: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// APIError wraps errors from YouTube Data API calls.
	APIError = youtube.APIError
	// StorageError wraps errors during store operations.
	StorageError = storage.StorageError
	// WebhookError wraps errors during Discord webhook delivery.
	WebhookError = discord.WebhookError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrQuotaExceeded indicates the Data API quota is exhausted.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrVideoNotFound indicates a video listed upstream could not be fetched.
	ErrVideoNotFound = youtube.ErrNotFound
	// ErrRateLimited indicates Discord rejected a delivery with 429 after
	// retries were exhausted.
	ErrRateLimited = discord.ErrRateLimited

	// Storage errors
	// ErrNotFound indicates an entity was not found in the store.
	ErrNotFound = storage.ErrNotFound
	// ErrInvalidInput indicates invalid input was provided to the store.
	ErrInvalidInput = storage.ErrInvalidInput
)
