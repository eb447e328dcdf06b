package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Quiz struct {
		FeedbackDelay string `yaml:"feedback_delay"`
		Amount        int    `yaml:"amount"`
		Category      int    `yaml:"category"`
		Difficulty    string `yaml:"difficulty"`
	} `yaml:"quiz"`
	Categories struct {
		TTL string `yaml:"ttl"`
	} `yaml:"categories"`
	Store struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"store"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Store backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Default returns the settings used when no config file is present.
func Default() Config {
	cfg := Config{}
	cfg.API.BaseURL = "https://opentdb.com"
	cfg.API.Timeout = "10s"
	cfg.Quiz.FeedbackDelay = "3s"
	cfg.Quiz.Amount = 10
	cfg.Store.Backend = BackendFile
	cfg.Store.Path = "highscore.yaml"
	cfg.Server.Port = "8080"
	return cfg
}

// Load reads YAML config from path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns Default when the file does not exist.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
