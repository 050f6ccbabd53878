package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when DIETLOG_CONFIG is unset and the file exists.
const DefaultPath = "configs/config.yaml"

// Config aggregates runtime configuration for the server and the CLI client.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Stats    StatsConfig    `yaml:"stats"`
	Records  RecordsConfig  `yaml:"records"`
	Backup   BackupConfig   `yaml:"backup"`
	Client   ClientConfig   `yaml:"client"`
}

// HTTPConfig controls the listener and route layout.
type HTTPConfig struct {
	Port            string        `yaml:"port"`
	APIPrefix       string        `yaml:"apiPrefix"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	// TrustProxy attributes requests by X-Forwarded-For / X-Real-IP. Only
	// enable it behind a reverse proxy that sets those headers.
	TrustProxy      bool          `yaml:"trustProxy"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StatsConfig bounds each store call made while aggregating.
type StatsConfig struct {
	StoreTimeout time.Duration `yaml:"storeTimeout"`
}

// RecordsConfig holds the create-vs-update identifier heuristic. Identifiers
// shorter than MinStoredIDLength are treated as client placeholders.
type RecordsConfig struct {
	MinStoredIDLength int `yaml:"minStoredIdLength"`
}

// BackupConfig controls encrypted snapshots to S3-compatible storage.
type BackupConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Interval      time.Duration `yaml:"interval"`
	RetentionDays int           `yaml:"retentionDays"`
	Passphrase    string        `yaml:"passphrase"`
	S3            S3Config      `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// ClientConfig is used by dietctl to reach the server.
type ClientConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("DIETLOG_CONFIG"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultPath); err == nil {
		if err := hydrateFromFile(cfg, DefaultPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:            "8080",
			APIPrefix:       "/api",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{Path: "dietlog.db"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Stats:    StatsConfig{StoreTimeout: 5 * time.Second},
		Records:  RecordsConfig{MinStoredIDLength: 14},
		Backup: BackupConfig{
			Interval:      24 * time.Hour,
			RetentionDays: 30,
			S3:            S3Config{Region: "auto"},
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DIETLOG_PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("DIETLOG_API_PREFIX"); v != "" {
		cfg.HTTP.APIPrefix = v
	}
	if v := os.Getenv("DIETLOG_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DIETLOG_TRUST_PROXY: %w", err)
		}
		cfg.HTTP.TrustProxy = b
	}
	if v := os.Getenv("DIETLOG_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DIETLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DIETLOG_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DIETLOG_STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DIETLOG_STORE_TIMEOUT: %w", err)
		}
		cfg.Stats.StoreTimeout = d
	}
	if v := os.Getenv("DIETLOG_MIN_STORED_ID_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DIETLOG_MIN_STORED_ID_LENGTH: %w", err)
		}
		cfg.Records.MinStoredIDLength = n
	}
	if v := os.Getenv("DIETLOG_BACKUP_ENABLED"); v != "" {
		cfg.Backup.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("DIETLOG_BACKUP_PASSPHRASE"); v != "" {
		cfg.Backup.Passphrase = v
	}
	if v := os.Getenv("DIETLOG_S3_ENDPOINT"); v != "" {
		cfg.Backup.S3.Endpoint = v
	}
	if v := os.Getenv("DIETLOG_S3_BUCKET"); v != "" {
		cfg.Backup.S3.Bucket = v
	}
	if v := os.Getenv("DIETLOG_S3_REGION"); v != "" {
		cfg.Backup.S3.Region = v
	}
	if v := os.Getenv("DIETLOG_S3_ACCESS_KEY"); v != "" {
		cfg.Backup.S3.AccessKey = v
	}
	if v := os.Getenv("DIETLOG_S3_SECRET_KEY"); v != "" {
		cfg.Backup.S3.SecretKey = v
	}
	if v := os.Getenv("DIETLOG_SERVER_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	return nil
}

// Validate ensures required fields are present and consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return errors.New("http.port is required")
	}
	if c.HTTP.APIPrefix != "" && !strings.HasPrefix(c.HTTP.APIPrefix, "/") {
		return errors.New("http.apiPrefix must start with /")
	}
	c.HTTP.APIPrefix = strings.TrimRight(c.HTTP.APIPrefix, "/")
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is required")
	}
	if c.Stats.StoreTimeout < 0 {
		return errors.New("stats.storeTimeout must not be negative")
	}
	if c.Records.MinStoredIDLength < 1 {
		return errors.New("records.minStoredIdLength must be at least 1")
	}
	if c.Backup.Enabled {
		if c.Backup.Passphrase == "" {
			return errors.New("backup.passphrase is required when backups are enabled")
		}
		if c.Backup.S3.Bucket == "" || c.Backup.S3.AccessKey == "" || c.Backup.S3.SecretKey == "" {
			return errors.New("backup.s3 bucket and credentials are required when backups are enabled")
		}
		if c.Backup.Interval <= 0 {
			return errors.New("backup.interval must be positive")
		}
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTP.Port
}
