package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// config carries process-level defaults; flags override per invocation.
type config struct {
	Width    int    `env:"CALVIEW_WIDTH" envDefault:"1280"`
	Height   int    `env:"CALVIEW_HEIGHT" envDefault:"720"`
	LogLevel string `env:"CALVIEW_LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c config) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
