// Package discord formats and delivers webhook notifications.
package discord

import (
	"fmt"
	"strings"
	"time"

	"ytnotify/config"
	"ytnotify/storage"
)

const (
	// embedColor is YouTube red.
	embedColor = 16711680
	// descriptionLimit caps the embed description length in runes.
	descriptionLimit = 200
	// tagsLimit caps the tags field length in runes.
	tagsLimit = 1000
	// footerText is the embed footer branding.
	footerText = "YouTube Notifier"
)

// Message is a Discord webhook payload: either plain content or embeds.
type Message struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// Embed is a Discord rich embed object.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// EmbedField is a single name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedImage references an image by URL.
type EmbedImage struct {
	URL string `json:"url"`
}

// EmbedAuthor is the embed author line.
type EmbedAuthor struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedFooter is the embed footer line.
type EmbedFooter struct {
	Text string `json:"text,omitempty"`
}

// Formatter renders notifications localized to the configured language and
// carrying the per-message display overrides.
type Formatter struct {
	lang      config.Language
	username  string
	avatarURL string
}

// NewFormatter creates a formatter. username and avatarURL override the
// webhook's display identity per message when non-empty.
func NewFormatter(lang config.Language, username, avatarURL string) *Formatter {
	return &Formatter{lang: lang, username: username, avatarURL: avatarURL}
}

// Basic renders the short plain-text summary notification.
func (f *Formatter) Basic(v *storage.Video) *Message {
	published := FormatTime(v.PublishedAt, f.lang)

	var content string
	if f.lang.Korean() {
		content = fmt.Sprintf("📺 **%s** 채널에 새 영상이 올라왔습니다!\n%s (%s)\n게시일: %s\n%s",
			v.ChannelTitle, v.Title, v.Duration, published, v.WatchURL())
	} else {
		content = fmt.Sprintf("📺 **%s** uploaded a new video!\n%s (%s)\nPublished: %s\n%s",
			v.ChannelTitle, v.Title, v.Duration, published, v.WatchURL())
	}

	return f.message(&Message{Content: content})
}

// Detail renders the richer embed notification. channelAvatar may be empty.
func (f *Formatter) Detail(v *storage.Video, channelAvatar string) *Message {
	ko := f.lang.Korean()

	fields := []EmbedField{
		{Name: pick(ko, "채널", "Channel"), Value: v.ChannelTitle, Inline: true},
		{Name: pick(ko, "재생 시간", "Duration"), Value: v.Duration, Inline: true},
		{Name: pick(ko, "게시일", "Published"), Value: FormatTime(v.PublishedAt, f.lang), Inline: true},
		{Name: pick(ko, "조회수", "Views"), Value: groupDigits(v.ViewCount), Inline: true},
		{Name: pick(ko, "좋아요", "Likes"), Value: groupDigits(v.LikeCount), Inline: true},
		{Name: pick(ko, "댓글", "Comments"), Value: groupDigits(v.CommentCount), Inline: true},
		{Name: pick(ko, "카테고리", "Category"), Value: v.CategoryName, Inline: true},
		{Name: pick(ko, "영상 ID", "Video ID"), Value: v.VideoID, Inline: true},
		{Name: pick(ko, "자막", "Caption"), Value: f.captionValue(v), Inline: true},
		{Name: pick(ko, "태그", "Tags"), Value: f.tagsValue(v), Inline: false},
	}

	if v.ScheduledStartTime != "" {
		value := v.ScheduledStartTime
		if t, err := time.Parse(time.RFC3339, v.ScheduledStartTime); err == nil {
			value = FormatTime(t, f.lang)
		}
		fields = append(fields, EmbedField{
			Name:   pick(ko, "예약된 시작 시간", "Scheduled Start Time"),
			Value:  value,
			Inline: true,
		})
	}

	embed := Embed{
		Title:       v.Title,
		Description: truncate(v.Description, descriptionLimit),
		URL:         v.WatchURL(),
		Color:       embedColor,
		Timestamp:   v.PublishedAt.UTC().Format(time.RFC3339),
		Fields:      fields,
		Footer:      &EmbedFooter{Text: footerText},
		Author: &EmbedAuthor{
			Name:    v.ChannelTitle,
			URL:     v.ChannelURL(),
			IconURL: channelAvatar,
		},
	}
	if v.ThumbnailURL != "" {
		embed.Image = &EmbedImage{URL: v.ThumbnailURL}
	}

	return f.message(&Message{Embeds: []Embed{embed}})
}

// message applies the per-message display overrides.
func (f *Formatter) message(m *Message) *Message {
	m.Username = f.username
	m.AvatarURL = f.avatarURL
	return m
}

// captionValue renders caption availability with a subtitle download link.
func (f *Formatter) captionValue(v *storage.Video) string {
	if !v.HasCaption() {
		return pick(f.lang.Korean(), "없음", "Not available")
	}
	link := "https://downsub.com/?url=" + v.WatchURL()
	return fmt.Sprintf("[%s](%s)", pick(f.lang.Korean(), "다운로드", "Download"), link)
}

// tagsValue renders the comma-joined tag list, capped for embed limits.
func (f *Formatter) tagsValue(v *storage.Video) string {
	if v.Tags == "" {
		return pick(f.lang.Korean(), "없음", "None")
	}
	return truncate(v.Tags, tagsLimit)
}

// FormatTime renders a timestamp in the notification language.
func FormatTime(t time.Time, lang config.Language) string {
	if lang.Korean() {
		return fmt.Sprintf("%d년 %02d월 %02d일 %02d시 %02d분",
			t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
	}
	return t.Format("2006-01-02 15:04:05")
}

func pick(korean bool, ko, en string) string {
	if korean {
		return ko
	}
	return en
}

// truncate shortens s to limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// groupDigits renders n with thousands separators.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
