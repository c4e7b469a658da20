package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreNATS   = "nats"
)

// Config struct to hold the configuration settings
type Config struct {
	API           APIConfig           `yaml:"api"`
	Store         StoreConfig         `yaml:"store"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// APIConfig holds the remote portal API settings.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	CookieName        string        `yaml:"cookie_name"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// StoreConfig selects where the session and credential survive restarts.
type StoreConfig struct {
	Backend string `yaml:"backend"` // memory|file|nats
	Dir     string `yaml:"dir"`
	Profile string `yaml:"profile"`
}

// NATSConfig holds NATS configuration for the key/value backend.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NKeySeed string `yaml:"nkey_seed"`
	Bucket   string `yaml:"bucket"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // text|json
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	ServiceName    string `yaml:"service_name"`
}

// Defaults returns the settings used for anything not configured.
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8080",
			Timeout:    15 * time.Second,
			CookieName: "token",
			Burst:      1,
		},
		Store: StoreConfig{
			Backend: StoreFile,
			Dir:     defaultStoreDir(),
			Profile: "default",
		},
		NATS: NATSConfig{
			Bucket: "portal-sessions",
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "text",
			Environment: "development",
			ServiceName: "portalctl",
		},
	}
}

func defaultStoreDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "hackathon-portal")
	}
	return ".hackathon-portal"
}

// LoadConfig loads the configuration from a YAML file. When the file does not
// exist the configuration comes from defaults and environment variables only.
// Environment variables always override the file.
func LoadConfig(filename string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist) || filename == "":
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORTAL_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("PORTAL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_TIMEOUT value: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("PORTAL_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_RATE_LIMIT value: %w", err)
		}
		cfg.API.RequestsPerSecond = f
	}
	if v := os.Getenv("PORTAL_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("PORTAL_STORE_DIR"); v != "" {
		cfg.Store.Dir = v
	}
	if v := os.Getenv("PORTAL_PROFILE"); v != "" {
		cfg.Store.Profile = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

// Validate checks the settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StoreFile:
		if c.Store.Dir == "" {
			return errors.New("store.dir is required for the file backend")
		}
	case StoreNATS:
		if c.NATS.URL == "" {
			return errors.New("NATS_URL environment variable not set")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
