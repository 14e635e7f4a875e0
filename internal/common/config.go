package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Full Planes
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Amadeus     AmadeusConfig `toml:"amadeus"`
	Quota       QuotaConfig   `toml:"quota"`
	Search      SearchConfig  `toml:"search"`
	Scan        ScanConfig    `toml:"scan"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// AmadeusConfig holds Amadeus API client configuration
type AmadeusConfig struct {
	AuthURL      string `toml:"auth_url"`
	SearchURL    string `toml:"search_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RateLimit    int    `toml:"rate_limit"`
	Timeout      string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *AmadeusConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// QuotaConfig holds the daily API call budget configuration
type QuotaConfig struct {
	Path       string `toml:"path"`
	DailyLimit int    `toml:"daily_limit"`
}

// SearchConfig holds search orchestration configuration
type SearchConfig struct {
	Workers     int `toml:"workers"`
	MaxSpanDays int `toml:"max_span_days"`
}

// ScanConfig holds defaults for the booked-flights scanner
type ScanConfig struct {
	Origins      []string `toml:"origins"`
	Destinations []string `toml:"destinations"`
	Days         int      `toml:"days"`
	SeatCeiling  int      `toml:"seat_ceiling"`
	ReportPath   string   `toml:"report_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Amadeus: AmadeusConfig{
			AuthURL:   "https://test.api.amadeus.com/v1/security/oauth2/token",
			SearchURL: "https://test.api.amadeus.com/v2/shopping/flight-offers",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Quota: QuotaConfig{
			Path:       "data/api_quota.json",
			DailyLimit: 1000,
		},
		Search: SearchConfig{
			Workers:     5,
			MaxSpanDays: 7,
		},
		Scan: ScanConfig{
			Origins:      []string{"FRA"},
			Destinations: []string{"JFK"},
			Days:         5,
			SeatCeiling:  5,
			ReportPath:   "report.html",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FULLPLANES_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FULLPLANES_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FULLPLANES_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FULLPLANES_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FULLPLANES_QUOTA_PATH"); path != "" {
		config.Quota.Path = path
	}

	if limit := os.Getenv("FULLPLANES_DAILY_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			config.Quota.DailyLimit = n
		}
	}

	// Amadeus credentials use the same variable names as the original tooling
	if key := os.Getenv("AMADEUS_API_KEY"); key != "" {
		config.Amadeus.ClientID = key
	}
	if secret := os.Getenv("AMADEUS_API_SECRET"); secret != "" {
		config.Amadeus.ClientSecret = secret
	}
	if url := os.Getenv("AMADEUS_AUTH_URL"); url != "" {
		config.Amadeus.AuthURL = url
	}
	if url := os.Getenv("AMADEUS_SEARCH_URL"); url != "" {
		config.Amadeus.SearchURL = url
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
