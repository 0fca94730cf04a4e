// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/samber/lo"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Menu layouts.
const (
	LayoutClassic  = "classic"
	LayoutExtended = "extended"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string `env:"BOT_TOKEN,required,notEmpty"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY,required,notEmpty"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	Model            string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	FactTopics []string `env:"FACT_TOPICS" envDefault:"biology,chemistry,geography,space,animals,Earth,history,technology" envSeparator:","`
	QuizTopics []string `env:"QUIZ_TOPICS" envDefault:"science,history,geography,animals,space" envSeparator:","`

	StorageBackend  string `env:"STORAGE_BACKEND" envDefault:"file"`
	SubscribersPath string `env:"SUBSCRIBERS_PATH" envDefault:"./data/subscribers.txt"`
	DatabasePath    string `env:"DATABASE_PATH" envDefault:"./data/bot.db"`

	DailyAt  DailyTime      `env:"DAILY_AT" envDefault:"09:00"`
	Timezone string         `env:"TIMEZONE" envDefault:"Local"`
	Location *time.Location `env:"-"`

	MenuLayout  string `env:"MENU_LAYOUT" envDefault:"extended"`
	FeedbackURL string `env:"FEEDBACK_URL" envDefault:"https://github.com/jevhen123zavirukha/telegram-bot-AI.git"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// DailyTime is a wall-clock time of day in HH:MM form.
type DailyTime struct {
	Hour   int
	Minute int
}

// UnmarshalText parses an HH:MM string.
func (d *DailyTime) UnmarshalText(text []byte) error {
	h, m, ok := strings.Cut(strings.TrimSpace(string(text)), ":")
	if !ok {
		return fmt.Errorf("invalid time %q, want HH:MM", text)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour in %q", text)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute in %q", text)
	}
	d.Hour, d.Minute = hour, minute
	return nil
}

func (d DailyTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.FactTopics = cleanList(cfg.FactTopics)
	cfg.QuizTopics = cleanList(cfg.QuizTopics)
	if len(cfg.FactTopics) == 0 {
		return nil, fmt.Errorf("FACT_TOPICS must not be empty")
	}
	if len(cfg.QuizTopics) == 0 {
		return nil, fmt.Errorf("QUIZ_TOPICS must not be empty")
	}

	switch cfg.StorageBackend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q, use: %s, %s", cfg.StorageBackend, BackendFile, BackendSQLite)
	}

	switch cfg.MenuLayout {
	case LayoutClassic, LayoutExtended:
	default:
		return nil, fmt.Errorf("invalid MENU_LAYOUT %q, use: %s, %s", cfg.MenuLayout, LayoutClassic, LayoutExtended)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return &cfg, nil
}

// cleanList trims every item and drops blanks and duplicates.
func cleanList(items []string) []string {
	trimmed := lo.Map(items, func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Uniq(lo.Compact(trimmed))
}
