package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from
// environment variables.
type Config struct {
	Env             string
	HTTPAddr        string
	Store           string // memory | sqlite | postgres
	DatabaseDSN     string
	KafkaBrokers    []string
	KafkaTopic      string
	CalendarMaxDays int
	MetricsCacheTTL time.Duration
}

// Load parses configuration from the current environment. A local .env is
// honored when present; missing files are not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:         getEnv("APP_ENV", "dev"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		Store:       strings.ToLower(getEnv("STORE", "memory")),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "casita.pricing.events"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	maxDays, err := parseIntEnv("CALENDAR_MAX_DAYS", 730)
	if err != nil {
		return Config{}, err
	}
	cfg.CalendarMaxDays = maxDays

	ttl, err := parseDurationEnv("METRICS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.MetricsCacheTTL = ttl

	switch cfg.Store {
	case "memory":
	case "sqlite", "postgres":
		if cfg.DatabaseDSN == "" {
			return Config{}, fmt.Errorf("DATABASE_DSN is required when STORE=%s", cfg.Store)
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE %q (memory, sqlite, postgres)", cfg.Store)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
