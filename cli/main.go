// Command ytnotify runs one YouTube to Discord notification cycle. It is
// meant to be invoked on a schedule; all configuration comes from
// environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ytnotify"
	"ytnotify/config"
	"ytnotify/discord"
	"ytnotify/storage"
	"ytnotify/youtube"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	service, err := yt.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return fmt.Errorf("create youtube service: %w", err)
	}

	source := youtube.NewSource(service, cfg, log)
	enricher := youtube.NewEnricher(service, cfg.Language, string(cfg.Mode), log)

	formatter := discord.NewFormatter(cfg.Language, cfg.Username, cfg.AvatarURL)
	client := discord.NewClient(discord.NewBudget(cfg.RateLimit), cfg.SendDelay, log)
	publisher := discord.NewPublisher(client, formatter,
		cfg.WebhookURL, cfg.DetailWebhookURL, cfg.DetailView, log)

	pipeline := ytnotify.NewPipeline(cfg, store, source, enricher, publisher, log)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("done",
		slog.String("run_id", result.RunID),
		slog.Int("published", result.Published),
		slog.Int64("stored", result.Stored))
	return nil
}

// openStore selects Postgres when DATABASE_URL is set, SQLite otherwise.
// Both constructors prepare the schema.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		log.Info("using postgres store")
		return storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	log.Info("using sqlite store", slog.String("path", cfg.DBPath))
	return storage.NewSQLiteStore(ctx, cfg.DBPath)
}
