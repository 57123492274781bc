// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Mode selects the video discovery strategy.
type Mode string

const (
	// ModeChannels lists the uploads of a single channel.
	ModeChannels Mode = "channels"
	// ModePlaylists lists a specific playlist.
	ModePlaylists Mode = "playlists"
	// ModeSearch lists keyword search results.
	ModeSearch Mode = "search"
)

// SortPolicy controls the ordering of playlist results.
type SortPolicy string

const (
	SortDefault    SortPolicy = "default"
	SortReverse    SortPolicy = "reverse"
	SortDateNewest SortPolicy = "date_newest"
	SortDateOldest SortPolicy = "date_oldest"
	SortPosition   SortPolicy = "position"
)

// Language selects the notification language.
type Language string

const (
	LangEnglish Language = "English"
	LangKorean  Language = "Korean"
)

// Korean reports whether Korean localization is active.
func (l Language) Korean() bool { return l == LangKorean }

// Config holds all application configuration for one notification run.
type Config struct {
	// APIKey is the YouTube Data API key.
	APIKey string
	// Mode is the video discovery strategy.
	Mode Mode
	// ChannelID is required in channels mode.
	ChannelID string
	// PlaylistID is required in playlists mode.
	PlaylistID string
	// PlaylistSort is the ordering applied to playlist results.
	PlaylistSort SortPolicy
	// SearchKeyword is required in search mode.
	SearchKeyword string

	// MaxResults caps candidates on a normal incremental run.
	MaxResults int
	// InitMaxResults caps candidates on an initialize run.
	InitMaxResults int
	// InitializeRun resets the store and uses the larger cap.
	InitializeRun bool

	// WebhookURL receives the basic notification.
	WebhookURL string
	// DetailWebhookURL receives the detail embed; falls back to WebhookURL.
	DetailWebhookURL string
	// DetailView enables the second, richer notification.
	DetailView bool
	// Username overrides the webhook display name per message.
	Username string
	// AvatarURL overrides the webhook avatar per message.
	AvatarURL string
	// RateLimit is the webhook send budget per rolling minute.
	RateLimit int
	// SendDelay is the fixed pause after every webhook send.
	SendDelay time.Duration

	// DateFilter is the raw date-range filter expression.
	DateFilter string
	// KeywordFilter is the raw keyword filter expression.
	KeywordFilter string
	// Language selects notification localization.
	Language Language

	// DBPath is the SQLite database file.
	DBPath string
	// DatabaseURL, when set, selects the Postgres store instead of SQLite.
	DatabaseURL string
}

// defaultConfig returns configuration with safe defaults.
func defaultConfig() *Config {
	return &Config{
		Mode:           ModeChannels,
		PlaylistSort:   SortDefault,
		MaxResults:     10,
		InitMaxResults: 50,
		Language:       LangEnglish,
		RateLimit:      30,
		SendDelay:      1 * time.Second,
		DBPath:         "youtube_videos.db",
	}
}

// Load reads configuration from environment variables and validates it.
// Missing or invalid required values abort the run before any network call.
func Load() (*Config, error) {
	cfg := defaultConfig()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	c.APIKey = os.Getenv("YOUTUBE_API_KEY")
	if v := os.Getenv("YOUTUBE_MODE"); v != "" {
		c.Mode = Mode(v)
	}
	c.ChannelID = os.Getenv("YOUTUBE_CHANNEL_ID")
	c.PlaylistID = os.Getenv("YOUTUBE_PLAYLIST_ID")
	if v := os.Getenv("YOUTUBE_PLAYLIST_SORT"); v != "" {
		c.PlaylistSort = SortPolicy(v)
	}
	c.SearchKeyword = os.Getenv("YOUTUBE_SEARCH_KEYWORD")
	if v := os.Getenv("YOUTUBE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxResults = n
		}
	}
	if v := os.Getenv("YOUTUBE_INIT_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.InitMaxResults = n
		}
	}
	c.InitializeRun = boolEnv("INITIALIZE_MODE_YOUTUBE")
	c.WebhookURL = os.Getenv("DISCORD_WEBHOOK_YOUTUBE")
	c.DetailWebhookURL = os.Getenv("DISCORD_WEBHOOK_YOUTUBE_DETAILVIEW")
	c.DetailView = boolEnv("YOUTUBE_DETAILVIEW")
	c.Username = os.Getenv("DISCORD_USERNAME_YOUTUBE")
	c.AvatarURL = os.Getenv("DISCORD_AVATAR_YOUTUBE")
	if v := os.Getenv("DISCORD_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit = n
		}
	}
	c.DateFilter = os.Getenv("DATE_FILTER_YOUTUBE")
	c.KeywordFilter = os.Getenv("ADVANCED_FILTER_YOUTUBE")
	if v := os.Getenv("LANGUAGE_YOUTUBE"); v != "" {
		c.Language = Language(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	c.DatabaseURL = os.Getenv("DATABASE_URL")
}

func boolEnv(name string) bool {
	v := os.Getenv(name)
	return v == "true" || v == "1"
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.WebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_YOUTUBE is required")
	}

	switch c.Mode {
	case ModeChannels:
		if c.ChannelID == "" {
			return fmt.Errorf("YOUTUBE_CHANNEL_ID is required in channels mode")
		}
	case ModePlaylists:
		if c.PlaylistID == "" {
			return fmt.Errorf("YOUTUBE_PLAYLIST_ID is required in playlists mode")
		}
		switch c.PlaylistSort {
		case SortDefault, SortReverse, SortDateNewest, SortDateOldest, SortPosition:
		default:
			return fmt.Errorf("invalid YOUTUBE_PLAYLIST_SORT %q", c.PlaylistSort)
		}
	case ModeSearch:
		if c.SearchKeyword == "" {
			return fmt.Errorf("YOUTUBE_SEARCH_KEYWORD is required in search mode")
		}
	default:
		return fmt.Errorf("YOUTUBE_MODE must be one of channels, playlists, search")
	}

	switch c.Language {
	case LangEnglish, LangKorean:
	default:
		return fmt.Errorf("LANGUAGE_YOUTUBE must be English or Korean")
	}

	if c.MaxResults <= 0 {
		return fmt.Errorf("YOUTUBE_MAX_RESULTS must be positive")
	}
	if c.InitMaxResults <= 0 {
		return fmt.Errorf("YOUTUBE_INIT_MAX_RESULTS must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("DISCORD_RATE_LIMIT must be positive")
	}

	return nil
}

// ResultCap returns the candidate cap for this run.
func (c *Config) ResultCap() int {
	if c.InitializeRun {
		return c.InitMaxResults
	}
	return c.MaxResults
}
