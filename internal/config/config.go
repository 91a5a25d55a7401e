// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings for the planner.
type Config struct {
	HTTPAddr  string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath    string     `env:"DB_PATH" envDefault:"data/hexcity.db"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	AdminKey  string     `env:"ADMIN_KEY"`
	Snapshot  string     `env:"SNAPSHOT"` // Named snapshot to load; empty = generate
	Seed      int64      `env:"MAP_SEED" envDefault:"42"`
	MapWidth  int        `env:"MAP_WIDTH" envDefault:"24"`
	MapHeight int        `env:"MAP_HEIGHT" envDefault:"20"`
	RenderPNG string     `env:"RENDER_PNG"` // Path for a map render; empty = skip
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
