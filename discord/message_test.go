package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytnotify/config"
	"ytnotify/storage"
)

func sampleVideo() *storage.Video {
	return &storage.Video{
		VideoID:      "dQw4w9WgXcQ",
		ChannelID:    "UCabcdefghij1234567890",
		ChannelTitle: "Example Channel",
		Title:        "Product Launch Event",
		Description:  "A walkthrough of the new release.",
		PublishedAt:  time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		CategoryName: "Science & Technology",
		Duration:     "1h 5m 30s",
		Tags:         "launch, release",
		Caption:      "true",
		ViewCount:    1234567,
		LikeCount:    8901,
		CommentCount: 234,
	}
}

func TestFormatterBasicEnglish(t *testing.T) {
	f := NewFormatter(config.LangEnglish, "Notifier", "https://example.com/a.png")
	msg := f.Basic(sampleVideo())

	assert.Contains(t, msg.Content, "Example Channel")
	assert.Contains(t, msg.Content, "uploaded a new video")
	assert.Contains(t, msg.Content, "Product Launch Event")
	assert.Contains(t, msg.Content, "Published: 2024-06-01 09:30:00")
	assert.Contains(t, msg.Content, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.Equal(t, "Notifier", msg.Username)
	assert.Equal(t, "https://example.com/a.png", msg.AvatarURL)
	assert.Empty(t, msg.Embeds)
}

func TestFormatterBasicKorean(t *testing.T) {
	f := NewFormatter(config.LangKorean, "", "")
	msg := f.Basic(sampleVideo())

	assert.Contains(t, msg.Content, "새 영상이 올라왔습니다")
	assert.Contains(t, msg.Content, "Example Channel")
}

func TestFormatterDetailFields(t *testing.T) {
	f := NewFormatter(config.LangEnglish, "", "")
	msg := f.Detail(sampleVideo(), "https://example.com/avatar.png")

	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]

	assert.Equal(t, "Product Launch Event", embed.Title)
	assert.Equal(t, embedColor, embed.Color)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", embed.URL)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", embed.Image.URL)
	require.NotNil(t, embed.Author)
	assert.Equal(t, "Example Channel", embed.Author.Name)
	assert.Equal(t, "https://example.com/avatar.png", embed.Author.IconURL)

	byName := map[string]string{}
	for _, field := range embed.Fields {
		byName[field.Name] = field.Value
	}
	assert.Equal(t, "1,234,567", byName["Views"])
	assert.Equal(t, "8,901", byName["Likes"])
	assert.Equal(t, "1h 5m 30s", byName["Duration"])
	assert.Equal(t, "2024-06-01 09:30:00", byName["Published"])
	assert.Contains(t, byName["Caption"], "downsub.com")
	assert.Equal(t, "launch, release", byName["Tags"])
	assert.NotContains(t, byName, "Scheduled Start Time")
}

func TestFormatterDetailKoreanFieldNames(t *testing.T) {
	f := NewFormatter(config.LangKorean, "", "")
	v := sampleVideo()
	v.Caption = "false"
	v.Tags = ""
	msg := f.Detail(v, "")

	require.Len(t, msg.Embeds, 1)
	byName := map[string]string{}
	for _, field := range msg.Embeds[0].Fields {
		byName[field.Name] = field.Value
	}
	assert.Equal(t, "1,234,567", byName["조회수"])
	assert.Equal(t, "없음", byName["자막"])
	assert.Equal(t, "없음", byName["태그"])
	assert.Equal(t, "2024년 06월 01일 09시 30분", byName["게시일"])
}

func TestFormatterDetailScheduledStart(t *testing.T) {
	f := NewFormatter(config.LangEnglish, "", "")
	v := sampleVideo()
	v.LiveBroadcastContent = "upcoming"
	v.ScheduledStartTime = "2024-07-01T18:00:00Z"
	msg := f.Detail(v, "")

	byName := map[string]string{}
	for _, field := range msg.Embeds[0].Fields {
		byName[field.Name] = field.Value
	}
	assert.Equal(t, "2024-07-01 18:00:00", byName["Scheduled Start Time"])
}

func TestFormatterDetailTruncation(t *testing.T) {
	f := NewFormatter(config.LangEnglish, "", "")
	v := sampleVideo()
	v.Description = strings.Repeat("a", 500)
	v.Tags = strings.Repeat("tag, ", 400)
	msg := f.Detail(v, "")

	embed := msg.Embeds[0]
	assert.Len(t, []rune(embed.Description), descriptionLimit+3)
	assert.True(t, strings.HasSuffix(embed.Description, "..."))

	byName := map[string]string{}
	for _, field := range embed.Fields {
		byName[field.Name] = field.Value
	}
	assert.LessOrEqual(t, len([]rune(byName["Tags"])), tagsLimit+3)
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupDigits(tt.n), "n=%d", tt.n)
	}
}
