// Package config loads glucolog settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all glucolog configuration.
type Config struct {
	Addr     string    `toml:"addr"`
	WebDir   string    `toml:"web_dir"`
	Timezone string    `toml:"timezone"`
	SeedDays int       `toml:"seed_days"`
	Log      LogConfig `toml:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Addr:   ":8080",
		WebDir: "web",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the optional TOML file at path and
// environment overrides, in that order. A missing file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	cfg.Addr = env("ADDR", cfg.Addr)
	cfg.WebDir = env("WEB_DIR", cfg.WebDir)
	cfg.Timezone = env("TZ_NAME", cfg.Timezone)
	cfg.Log.Level = env("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = env("LOG_FORMAT", cfg.Log.Format)
	if v := env("SEED_DAYS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("SEED_DAYS: want a non-negative integer, got %q", v)
		}
		cfg.SeedDays = n
	}

	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Location resolves the configured timezone; empty means the host's local
// zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
