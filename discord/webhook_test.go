package discord

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytnotify/retry"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(nil, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.retry = retry.Config{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
	return c
}

func TestClientSendSuccess(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := testClient(t)
	err := c.Send(context.Background(), srv.URL, &Message{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
}

func TestClientSendRetriesServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := testClient(t)
	err := c.Send(context.Background(), srv.URL, &Message{Content: "retry me"})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestClientSendPermanentClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t)
	err := c.Send(context.Background(), srv.URL, &Message{Content: "nope"})

	var werr *WebhookError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, http.StatusBadRequest, werr.Status)
	assert.Equal(t, 1, calls, "4xx other than 429 must not be retried")
}

func TestClientSendRetriesRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t)
	err := c.Send(context.Background(), srv.URL, &Message{Content: "again"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestClientSendDelayApplied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := testClient(t)
	c.sendDelay = time.Second
	var slept time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	require.NoError(t, c.Send(context.Background(), srv.URL, &Message{Content: "x"}))
	assert.Equal(t, time.Second, slept)
}

func TestClientSendContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(t)
	c.budget = NewBudget(1)
	err := c.Send(ctx, "http://127.0.0.1:0", &Message{Content: "x"})

	var werr *WebhookError
	require.ErrorAs(t, err, &werr)
	assert.True(t, errors.Is(err, context.Canceled))
}
