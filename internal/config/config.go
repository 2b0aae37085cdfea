package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultFeedURL is the USGS "all earthquakes, past week" GeoJSON summary.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"

// Preference slot backends.
const (
	PrefsBackendFile     = "file"
	PrefsBackendPostgres = "postgres"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedURL         string
	FeedTimeout     time.Duration
	RefreshInterval time.Duration // 0 disables periodic refresh
	DisplayLocation *time.Location

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Preference persistence.
	PrefsBackend string
	PrefsDir     string
	DatabaseURL  string

	// Optional Kafka publication of fetched records.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FEED_TIMEOUT", "5s"))
	if err != nil || feedTimeout <= 0 {
		return nil, errors.New("invalid FEED_TIMEOUT")
	}

	refreshInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil || refreshInterval < 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}

	loc, err := time.LoadLocation(sharedcfg.EnvOrDefault("DISPLAY_TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TZ: %w", err)
	}

	prefsDir, err := defaultPrefsDir()
	if err != nil {
		return nil, err
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		FeedURL:         sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FeedTimeout:     feedTimeout,
		RefreshInterval: refreshInterval,
		DisplayLocation: loc,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PrefsBackend: sharedcfg.EnvOrDefault("PREFS_BACKEND", PrefsBackendFile),
		PrefsDir:     prefsDir,
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquakes"),
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}
	switch cfg.PrefsBackend {
	case PrefsBackendFile:
	case PrefsBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("PREFS_BACKEND is postgres but DATABASE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("invalid PREFS_BACKEND %q", cfg.PrefsBackend)
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

// defaultPrefsDir honours PREFS_DIR, otherwise ~/.quake-feed.
func defaultPrefsDir() (string, error) {
	if dir := os.Getenv("PREFS_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve PREFS_DIR: %w", err)
	}
	return filepath.Join(home, ".quake-feed"), nil
}
