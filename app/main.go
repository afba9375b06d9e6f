package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sceneboard/internal/config"
	"sceneboard/internal/feed"
	"sceneboard/internal/poller"
	"sceneboard/internal/repositories"
	"sceneboard/internal/utils/logger/handlers/slogpretty"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var Version = "0.1"

func main() {
	var (
		configPath string
		venueID    int64
		dryRun     bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file (falls back to CONFIG_PATH)")
	flag.Int64Var(&venueID, "venue-id", 0, "poll only this venue (by ID); defaults to all venues with feeds")
	flag.BoolVar(&dryRun, "dry-run", false, "parse feeds and report results without writing to the database")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)

	log.Info(
		"starting feed poller",
		slog.String("env", cfg.Env),
		slog.String("version", Version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repositoryService, err := repositories.New(log, cfg)
	if err != nil {
		log.Error("failed to init repository", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repositoryService.Shutdown(context.Background())

	fetcher := feed.NewFetcher(log, cfg.PollerConfig.FetchTimeout, cfg.PollerConfig.UserAgent)

	pollerService := poller.New(
		log,
		repositoryService,
		repositoryService,
		fetcher,
		feed.Parse,
		nil, // настенные часы
		cfg.PollerConfig.PastGrace,
		os.Stdout,
		os.Stderr,
	)

	// Ошибки уровня площадки не влияют на код выхода: они уже отражены
	// в отчёте и будут повторены следующим плановым запуском.
	if _, err := pollerService.Run(ctx, poller.Options{VenueID: venueID, DryRun: dryRun}); err != nil {
		log.Error("poll run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default: // If env config is invalid, set prod settings by default due to security
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
