package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the HTTP API configuration.
type HTTPConfig struct {
	Address        string  `yaml:"address"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// ScoringConfig holds the per-tier base point values. Values must be strictly
// decreasing from Exact down to OneScoreOnly; the "no match" tier is always 0.
type ScoringConfig struct {
	Exact           int `yaml:"exact"`
	WinnerPlusScore int `yaml:"winner_plus_score"`
	WinnerOnly      int `yaml:"winner_only"`
	OneScoreOnly    int `yaml:"one_score_only"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Scoring: ScoringConfig{
			Exact:           10,
			WinnerPlusScore: 7,
			WinnerOnly:      5,
			OneScoreOnly:    2,
		},
	}
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Environment variables
// override file values either way.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(filename); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HTTP.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimitBurst = n
		}
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (config file or DATABASE_URL)")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS URL not set (config file or NATS_URL)")
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects tier values that are not strictly decreasing or that would
// award points for the "no match" tier.
func (c ScoringConfig) Validate() error {
	if c.OneScoreOnly <= 0 {
		return fmt.Errorf("scoring: one_score_only must be positive, got %d", c.OneScoreOnly)
	}
	if !(c.Exact > c.WinnerPlusScore && c.WinnerPlusScore > c.WinnerOnly && c.WinnerOnly > c.OneScoreOnly) {
		return fmt.Errorf("scoring: tier values must be strictly decreasing, got exact=%d winner_plus_score=%d winner_only=%d one_score_only=%d",
			c.Exact, c.WinnerPlusScore, c.WinnerOnly, c.OneScoreOnly)
	}
	return nil
}
