// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/guaibalabs/weather-risk/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Municipality catalog.
	CitiesCSVPath string
	AdminRegion   string

	// Forecast provider.
	OpenMeteoBaseURL string
	FetchTimeout     time.Duration
	FetchConcurrency int

	// Service-mode refresh and batch retention.
	RefreshInterval time.Duration
	StoreMaxHistory int
	StoreMaxAge     time.Duration

	RiskPolicy string

	// Optional Kafka sink for assessed results.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := envDuration("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := envDuration("REFRESH_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}
	storeMaxAge, err := envDuration("STORE_MAX_AGE", "24h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CitiesCSVPath: envOrDefault("CITIES_CSV", "data/worldcities.csv"),
		AdminRegion:   envOrDefault("ADMIN_REGION", "Rio Grande do Sul"),

		OpenMeteoBaseURL: envOrDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		FetchTimeout:     fetchTimeout,
		FetchConcurrency: envInt("FETCH_CONCURRENCY", 16),

		RefreshInterval: refreshInterval,
		StoreMaxHistory: envInt("STORE_MAX_HISTORY", 24),
		StoreMaxAge:     storeMaxAge,

		RiskPolicy: envOrDefault("RISK_POLICY", "default"),

		KafkaEnabled:   envOrDefault("KAFKA_ENABLED", "false") == "true",
		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "city-risk-assessments"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CitiesCSVPath == "" {
		return errors.New("CITIES_CSV is required")
	}
	if c.AdminRegion == "" {
		return errors.New("ADMIN_REGION is required")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	if c.FetchConcurrency <= 0 {
		return errors.New("FETCH_CONCURRENCY must be positive")
	}
	if c.RefreshInterval <= 0 {
		return errors.New("REFRESH_INTERVAL must be positive")
	}
	if _, err := domain.PolicyByName(c.RiskPolicy); err != nil {
		return fmt.Errorf("invalid RISK_POLICY: %w", err)
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if c.KafkaSinkTopic == "" {
			return errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is not set")
		}
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
