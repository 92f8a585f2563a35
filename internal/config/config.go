package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the full service configuration. Secrets are taken from the
// environment and never from the file, so a checked-in config stays safe.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Session  SessionConfig  `yaml:"session"`
	Operator OperatorConfig `yaml:"operator"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Indexer  IndexerConfig  `yaml:"indexer"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`

	// SecureCookies should be false only in local development.
	SecureCookies bool `yaml:"secure_cookies"`
}

type SessionConfig struct {
	// TTL of issued sessions. Defaults to 24h.
	TTL time.Duration `yaml:"ttl"`

	// Secret signs session tokens. Env: SESSION_SECRET.
	Secret string `yaml:"-"`
}

func (c *SessionConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}

type OperatorConfig struct {
	// PrivateKey is the hex-encoded operator signing key.
	// Env: OPERATOR_PRIVATE_KEY.
	PrivateKey string `yaml:"-"`
}

func (c *OperatorConfig) Validate() error {
	if c.PrivateKey == "" {
		return fmt.Errorf("OPERATOR_PRIVATE_KEY is required")
	}
	return nil
}

type DatabaseConfig struct {
	// URL is the Postgres connection string. Env: DATABASE_URL.
	URL string `yaml:"-"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

type RedisConfig struct {
	// URL is the Redis connection string. Env: REDIS_URL.
	URL string `yaml:"-"`
}

type IndexerConfig struct {
	// BaseURL of the Alchemy NFT API for the active network,
	// e.g. "https://polygon-mumbai.g.alchemy.com".
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates against the indexer. Env: ALCHEMY_API_KEY.
	APIKey string `yaml:"-"`
}

func (c *IndexerConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("indexer base_url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("ALCHEMY_API_KEY is required")
	}
	return nil
}

// Load reads the optional YAML file at path, applies environment overrides
// and defaults, and validates every section.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  ServerConfig{Addr: ":9000", SecureCookies: true},
		Session: SessionConfig{TTL: 24 * time.Hour},
		Redis:   RedisConfig{URL: "redis://localhost:6379/0"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Session.Secret = os.Getenv("SESSION_SECRET")
	cfg.Operator.PrivateKey = os.Getenv("OPERATOR_PRIVATE_KEY")
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Indexer.APIKey = os.Getenv("ALCHEMY_API_KEY")
	if url := os.Getenv("ALCHEMY_BASE_URL"); url != "" {
		cfg.Indexer.BaseURL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}

	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Operator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Indexer.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
