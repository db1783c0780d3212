// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Tracker       TrackerConfig       `yaml:"tracker"`
	Source        SourceConfig        `yaml:"source"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Settings      domain.Settings     `yaml:"settings"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StorageConfig selects and configures the snapshot store backend.
type StorageConfig struct {
	Backend  string         `yaml:"backend"` // file, postgres
	File     FileConfig     `yaml:"file"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// FileConfig defines the JSON file store settings.
type FileConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig defines PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		p.Host, p.Port, p.Name, p.User, p.Password, p.SSLMode,
	)
}

// TrackerConfig defines history update engine settings.
type TrackerConfig struct {
	MaxHistoryLength int    `yaml:"max_history_length"`
	DefaultCurrency  string `yaml:"default_currency"`
}

// SourceConfig selects and configures the observation source.
type SourceConfig struct {
	Backend string           `yaml:"backend"` // http, file
	HTTP    HTTPSourceConfig `yaml:"http"`
	File    FileSourceConfig `yaml:"file"`
}

// HTTPSourceConfig defines the cart page scraper settings.
type HTTPSourceConfig struct {
	URL         string          `yaml:"url"`
	Selectors   SelectorConfig  `yaml:"selectors"`
	CookiesFile string          `yaml:"cookies_file"`
	Timeout     time.Duration   `yaml:"timeout"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// SelectorConfig defines the CSS selectors used to extract observations
// from the cart page markup.
type SelectorConfig struct {
	Item          string `yaml:"item"`
	ProductIDAttr string `yaml:"product_id_attr"`
	Title         string `yaml:"title"`
	Price         string `yaml:"price"`
}

// RateLimitConfig defines scrape rate limiting settings.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// FileSourceConfig defines the JSON fixture source settings.
type FileSourceConfig struct {
	Path string `yaml:"path"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyStorageDefaults(&cfg.Storage)
	applyTrackerDefaults(&cfg.Tracker)
	applySourceDefaults(&cfg.Source)
	applySettingsDefaults(&cfg.Settings)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyStorageDefaults(s *StorageConfig) {
	if s.Backend == "" {
		s.Backend = "file"
	}
	if s.File.Path == "" {
		s.File.Path = "price-history.json"
	}
	if s.Postgres.Port == 0 {
		s.Postgres.Port = 5432
	}
	if s.Postgres.SSLMode == "" {
		s.Postgres.SSLMode = "disable"
	}
	if s.Postgres.PoolSize == 0 {
		s.Postgres.PoolSize = 10
	}
}

func applyTrackerDefaults(t *TrackerConfig) {
	if t.MaxHistoryLength == 0 {
		t.MaxHistoryLength = 100
	}
	if t.DefaultCurrency == "" {
		t.DefaultCurrency = "EUR"
	}
}

func applySourceDefaults(s *SourceConfig) {
	if s.Backend == "" {
		s.Backend = "http"
	}
	if s.HTTP.Timeout == 0 {
		s.HTTP.Timeout = 15 * time.Second
	}
	if s.HTTP.RateLimit.PerSecond == 0 {
		s.HTTP.RateLimit.PerSecond = 1.0
	}
	if s.HTTP.RateLimit.Burst == 0 {
		s.HTTP.RateLimit.Burst = 2
	}
	applySelectorDefaults(&s.HTTP.Selectors)
}

func applySelectorDefaults(s *SelectorConfig) {
	if s.Item == "" {
		s.Item = "[data-asin]"
	}
	if s.ProductIDAttr == "" {
		s.ProductIDAttr = "data-asin"
	}
	if s.Title == "" {
		s.Title = ".sc-product-title"
	}
	if s.Price == "" {
		s.Price = ".sc-product-price"
	}
}

func applySettingsDefaults(s *domain.Settings) {
	def := domain.DefaultSettings()
	if s.CheckIntervalMinutes == 0 {
		s.CheckIntervalMinutes = def.CheckIntervalMinutes
	}
	if s.PriceDropThreshold == 0 {
		s.PriceDropThreshold = def.PriceDropThreshold
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Storage.Backend {
	case "file":
		// path always defaulted
	case "postgres":
		if cfg.Storage.Postgres.Host == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.host is required when backend is postgres"))
		}
		if cfg.Storage.Postgres.Name == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.name is required when backend is postgres"))
		}
		if cfg.Storage.Postgres.User == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.user is required when backend is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be one of: file, postgres (got %q)", cfg.Storage.Backend))
	}

	switch cfg.Source.Backend {
	case "http":
		if cfg.Source.HTTP.URL == "" {
			errs = append(errs, fmt.Errorf("source.http.url is required when backend is http"))
		}
	case "file":
		if cfg.Source.File.Path == "" {
			errs = append(errs, fmt.Errorf("source.file.path is required when backend is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("source.backend must be one of: http, file (got %q)", cfg.Source.Backend))
	}

	if cfg.Tracker.MaxHistoryLength < 1 {
		errs = append(errs, fmt.Errorf("tracker.max_history_length must be positive, got %d", cfg.Tracker.MaxHistoryLength))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}

	if err := cfg.Settings.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("settings: %w", err))
	}

	return errors.Join(errs...)
}
