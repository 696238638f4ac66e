// Package config loads speedmap settings from an optional YAML file, a
// .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"speedmap/internal/speedtest"
)

// Config holds the runtime settings.
type Config struct {
	LogFile        string           `yaml:"log_file"`
	Debug          bool             `yaml:"debug"`
	StartDir       string           `yaml:"start_dir"`
	SelectionColor string           `yaml:"selection_color"`
	Columns        speedtest.Schema `yaml:"columns"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		SelectionColor: "#4CAF50",
		Columns:        speedtest.DefaultSchema(),
	}
}

// Load reads path (when non-empty) over the defaults, then applies .env and
// SPEEDMAP_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.LogFile = getEnv("SPEEDMAP_LOG_FILE", cfg.LogFile)
	cfg.StartDir = getEnv("SPEEDMAP_START_DIR", cfg.StartDir)
	cfg.Debug = getEnvAsBool("SPEEDMAP_DEBUG", cfg.Debug)
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
