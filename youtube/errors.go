package youtube

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for upstream API conditions.
var (
	// ErrQuotaExceeded indicates the daily API quota is exhausted.
	ErrQuotaExceeded = errors.New("youtube: api quota exceeded")
	// ErrNotFound indicates the requested resource does not exist upstream.
	ErrNotFound = errors.New("youtube: not found")
)

// APIError wraps upstream API errors with context about what failed.
// Use errors.As() to extract this error type and get operation details:
//
//	var apiErr *youtube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("Failed to %s %s: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}
type APIError struct {
	// Op is the API operation that failed ("playlist_items", "search", "videos", ...).
	Op string
	// ID is the channel, playlist or video identifier involved.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	if e.ID != "" {
		return "youtube: " + e.Op + " " + e.ID + ": " + e.Err.Error()
	}
	return "youtube: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }

// wrapAPIError wraps an upstream failure, tagging quota exhaustion with
// ErrQuotaExceeded so callers can distinguish it.
func wrapAPIError(op, id string, err error) error {
	if isQuotaError(err) {
		err = errors.Join(ErrQuotaExceeded, err)
	}
	return &APIError{Op: op, ID: id, Err: err}
}

// isQuotaError reports whether err is a quota exhaustion response.
func isQuotaError(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code != 403 {
		return false
	}
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
			return true
		}
	}
	return false
}

// apiErrorClassifier determines if an API error is worth retrying.
// Quota errors are retried a bounded number of times before being surfaced;
// other 4xx responses are permanent.
func apiErrorClassifier(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 429 || gerr.Code >= 500 {
			return true
		}
		if isQuotaError(err) {
			return true
		}
		return false
	}

	// Network-level failures are retryable.
	return true
}
