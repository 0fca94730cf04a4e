package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"funfact_bot/internal/bot"
	"funfact_bot/internal/config"
	"funfact_bot/internal/generator"
	"funfact_bot/internal/llm"
	"funfact_bot/internal/scheduler"
	"funfact_bot/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		log.Error("open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	gen := generator.New(llm.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), cfg.Model)

	b, err := bot.New(cfg.TelegramBotToken, gen, store, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	sched := scheduler.New(store, b, cfg.DailyAt, cfg.Location, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot",
		"model", cfg.Model,
		"storage", cfg.StorageBackend,
		"daily_at", cfg.DailyAt.String(),
		"timezone", cfg.Location.String(),
	)

	go sched.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func openStore(cfg *config.Config) (storage.Recipients, error) {
	path := cfg.SubscribersPath
	if cfg.StorageBackend == config.BackendSQLite {
		path = cfg.DatabasePath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	if cfg.StorageBackend == config.BackendSQLite {
		return storage.NewSQLite(path)
	}
	return storage.NewFile(path)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
