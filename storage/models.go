package storage

import "time"

// Video is a fully enriched video record as persisted in the videos table.
type Video struct {
	// VideoID is the YouTube video ID (e.g., "dQw4w9WgXcQ"). Primary key.
	VideoID string `json:"video_id"`
	// ChannelID is the YouTube channel ID.
	ChannelID string `json:"channel_id"`
	// ChannelTitle is the display name of the channel.
	ChannelTitle string `json:"channel_title"`
	// Title is the video title.
	Title string `json:"title"`
	// Description is the video description.
	Description string `json:"description,omitempty"`
	// PublishedAt is when the video was published, UTC.
	PublishedAt time.Time `json:"published_at"`
	// ThumbnailURL is the high resolution thumbnail.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	// CategoryID is the YouTube category ID.
	CategoryID string `json:"category_id,omitempty"`
	// CategoryName is the resolved category name, or "Unknown".
	CategoryName string `json:"category_name,omitempty"`
	// Duration is the localized human-readable video length.
	Duration string `json:"duration,omitempty"`
	// Tags is the comma-joined tag list.
	Tags string `json:"tags,omitempty"`
	// LiveBroadcastContent is "none", "upcoming" or "live".
	LiveBroadcastContent string `json:"live_broadcast_content,omitempty"`
	// ScheduledStartTime is the live-stream schedule, RFC3339, empty when absent.
	ScheduledStartTime string `json:"scheduled_start_time,omitempty"`
	// Caption is "true" when captions are available.
	Caption string `json:"caption,omitempty"`
	// ViewCount is the view counter at enrichment time.
	ViewCount int64 `json:"view_count"`
	// LikeCount is the like counter at enrichment time.
	LikeCount int64 `json:"like_count"`
	// CommentCount is the comment counter at enrichment time.
	CommentCount int64 `json:"comment_count"`
	// Source is the discovery mode that found this video.
	Source string `json:"source"`
}

// WatchURL returns the full YouTube URL for this video.
func (v *Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// ChannelURL returns the full YouTube URL for this video's channel.
func (v *Video) ChannelURL() string {
	return "https://www.youtube.com/channel/" + v.ChannelID
}

// HasCaption reports whether captions are available for download.
func (v *Video) HasCaption() bool { return v.Caption == "true" }
