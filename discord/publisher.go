package discord

import (
	"context"
	"log/slog"

	"ytnotify/storage"
)

// Publisher sends the configured notifications for one video: always the
// basic summary, plus the detail embed when enabled.
type Publisher struct {
	client    *Client
	formatter *Formatter
	basicURL  string
	detailURL string
	detail    bool
	log       *slog.Logger
}

// NewPublisher creates a publisher. detailURL falls back to basicURL when
// empty and the detail view is enabled.
func NewPublisher(client *Client, formatter *Formatter, basicURL, detailURL string, detail bool, log *slog.Logger) *Publisher {
	if detailURL == "" {
		detailURL = basicURL
	}
	return &Publisher{
		client:    client,
		formatter: formatter,
		basicURL:  basicURL,
		detailURL: detailURL,
		detail:    detail,
		log:       log,
	}
}

// Publish delivers the notifications for v. channelAvatar may be empty. A
// failed basic send skips the detail send for the same video.
func (p *Publisher) Publish(ctx context.Context, v *storage.Video, channelAvatar string) error {
	if err := p.client.Send(ctx, p.basicURL, p.formatter.Basic(v)); err != nil {
		return err
	}
	if !p.detail {
		return nil
	}

	p.log.Debug("sending detail view", "video_id", v.VideoID)
	return p.client.Send(ctx, p.detailURL, p.formatter.Detail(v, channelAvatar))
}
