// Package config loads playerstore configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/playerstore/internal/logging"
	"github.com/mcoot/playerstore/internal/services/registry"
	"github.com/mcoot/playerstore/internal/storage/file"
	"github.com/mcoot/playerstore/internal/storage/postgres"
	redisstorage "github.com/mcoot/playerstore/internal/storage/redis"
)

// Config holds all playerstore configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Registry RegistryConfig `yaml:"registry"`
	Log      LogConfig      `yaml:"log"`
}

// StorageConfig selects and configures the persistence provider
type StorageConfig struct {
	Type     string         `yaml:"type"` // file, memory, redis or postgres
	Path     string         `yaml:"path"` // file provider only
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// RedisConfig holds Redis provider settings
type RedisConfig struct {
	URL          string `yaml:"url"`
	Namespace    string `yaml:"namespace"`
	PoolSize     int    `yaml:"pool_size"`
	MinIdleConns int    `yaml:"min_idle_conns"`
}

// PostgresConfig holds PostgreSQL provider settings
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	Table        string `yaml:"table"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	// EnsureSchema creates the table on startup
	EnsureSchema bool `yaml:"ensure_schema"`
}

// RegistryConfig holds validation settings for the registry
type RegistryConfig struct {
	StrictValidation  bool `yaml:"strict_validation"`
	MaxNicknameLength int  `yaml:"max_nickname_length"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or text
}

// Storage types
const (
	StorageTypeFile     = "file"
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// Default returns the configuration used when no file is given:
// a JSON file at ./data.json, lenient validation, JSON logs at info
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no sensible default
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageTypeFile, StorageTypeMemory, StorageTypeRedis, StorageTypePostgres:
	default:
		return fmt.Errorf("invalid storage type %q: must be file, memory, redis or postgres", c.Storage.Type)
	}
	if c.Registry.MaxNicknameLength < 0 {
		return fmt.Errorf("max_nickname_length must not be negative, got %d", c.Registry.MaxNicknameLength)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = StorageTypeFile
	}
	if c.Storage.Path == "" {
		c.Storage.Path = file.DefaultPath
	}

	redisDefaults := redisstorage.DefaultConfig()
	if c.Storage.Redis.URL == "" {
		c.Storage.Redis.URL = redisDefaults.URL
	}
	if c.Storage.Redis.Namespace == "" {
		c.Storage.Redis.Namespace = redisDefaults.Namespace
	}
	if c.Storage.Redis.PoolSize == 0 {
		c.Storage.Redis.PoolSize = redisDefaults.PoolSize
	}
	if c.Storage.Redis.MinIdleConns == 0 {
		c.Storage.Redis.MinIdleConns = redisDefaults.MinIdleConns
	}

	pgDefaults := postgres.DefaultConfig()
	if c.Storage.Postgres.DSN == "" {
		c.Storage.Postgres.DSN = pgDefaults.DSN
	}
	if c.Storage.Postgres.Table == "" {
		c.Storage.Postgres.Table = pgDefaults.Table
	}
	if c.Storage.Postgres.MaxOpenConns == 0 {
		c.Storage.Postgres.MaxOpenConns = pgDefaults.MaxOpenConns
	}
	if c.Storage.Postgres.MaxIdleConns == 0 {
		c.Storage.Postgres.MaxIdleConns = pgDefaults.MaxIdleConns
	}

	if c.Registry.MaxNicknameLength == 0 {
		c.Registry.MaxNicknameLength = registry.DefaultMaxNicknameLength
	}

	logDefaults := logging.DefaultConfig()
	if c.Log.Level == "" {
		c.Log.Level = logDefaults.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = logDefaults.Format
	}
}

// RedisConfig converts to the Redis provider's config
func (c *Config) RedisConfig() redisstorage.Config {
	return redisstorage.Config{
		URL:          c.Storage.Redis.URL,
		PoolSize:     c.Storage.Redis.PoolSize,
		MinIdleConns: c.Storage.Redis.MinIdleConns,
		Namespace:    c.Storage.Redis.Namespace,
	}
}

// PostgresConfig converts to the PostgreSQL provider's config
func (c *Config) PostgresConfig() postgres.Config {
	return postgres.Config{
		DSN:          c.Storage.Postgres.DSN,
		Table:        c.Storage.Postgres.Table,
		MaxOpenConns: c.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: c.Storage.Postgres.MaxIdleConns,
	}
}

// RegistryConfig converts to the registry service's config
func (c *Config) RegistryConfig() registry.Config {
	return registry.Config{
		StrictValidation:  c.Registry.StrictValidation,
		MaxNicknameLength: c.Registry.MaxNicknameLength,
	}
}

// LoggingConfig converts to the logging package's config
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
	}
}
