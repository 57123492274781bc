package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ytnotify/retry"
)

// ErrRateLimited indicates Discord rejected the delivery with 429 after
// retries were exhausted.
var ErrRateLimited = errors.New("discord: rate limited")

// WebhookError describes a failed webhook delivery. Status is zero when the
// request never reached Discord.
type WebhookError struct {
	Status int
	Err    error
}

func (e *WebhookError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("discord webhook: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("discord webhook: %v", e.Err)
}

func (e *WebhookError) Unwrap() error { return e.Err }

// statusError carries an HTTP status through the retry classifier.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.body)
}

// webhookClassifier retries rate limits, server errors and transport
// failures. Other client errors are permanent.
func webhookClassifier(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.status == http.StatusTooManyRequests || se.status >= 500
	}
	return retry.IsRetryable(err)
}

// Client posts messages to Discord webhooks under a rolling send budget and
// with a fixed pause after every delivery.
type Client struct {
	httpClient *http.Client
	retry      retry.Config
	budget     *Budget
	sendDelay  time.Duration
	log        *slog.Logger

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a webhook client. budget may be nil to disable the
// rolling send limit.
func NewClient(budget *Budget, sendDelay time.Duration, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retry:      retry.DefaultConfig(),
		budget:     budget,
		sendDelay:  sendDelay,
		log:        log,
	}
}

// Send delivers msg to the webhook at url. It waits for a budget slot first
// and pauses for the configured delay afterwards, whether or not the
// delivery succeeded.
func (c *Client) Send(ctx context.Context, url string, msg *Message) error {
	if err := c.budget.Wait(ctx); err != nil {
		return &WebhookError{Err: err}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return &WebhookError{Err: err}
	}

	err = retry.Do(ctx, c.retry, webhookClassifier, func(ctx context.Context) error {
		return c.post(ctx, url, body)
	})

	if derr := c.pause(ctx); derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			if se.status == http.StatusTooManyRequests {
				err = errors.Join(ErrRateLimited, err)
			}
			return &WebhookError{Status: se.status, Err: err}
		}
		return &WebhookError{Err: err}
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return &statusError{status: resp.StatusCode, body: string(snippet)}
}

// pause applies the fixed post-send delay.
func (c *Client) pause(ctx context.Context) error {
	if c.sendDelay <= 0 {
		return nil
	}
	sleep := c.sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	return sleep(ctx, c.sendDelay)
}
