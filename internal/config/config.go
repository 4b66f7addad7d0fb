// Package config provides configuration for the chess game server.
package config

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// EnvPrefix is prepended to every environment variable Load reads,
// e.g. CHESSD_SERVER_PORT.
const EnvPrefix = "CHESSD"

// Store backends.
const (
	MemoryBackend = "memory"
	MongoBackend  = "mongo"
)

// Config holds all server configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig

	// LogFile receives log lines and HTTP access logs.
	LogFile io.Writer `ignored:"true"`
}

// ServerConfig holds settings for the HTTP listener.
type ServerConfig struct {
	Host string
	Port string

	// AllowOrigins is a comma-separated CORS origin list.
	AllowOrigins string `split_words:"true"`
}

// StoreConfig holds settings for snapshot persistence.
type StoreConfig struct {
	// Backend is MemoryBackend or MongoBackend.
	Backend string

	MongoAddress    string `split_words:"true"`
	MongoDatabase   string `split_words:"true"`
	MongoCollection string `split_words:"true"`

	// Timeout bounds every store operation.
	Timeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         "8080",
		AllowOrigins: "*",
	}
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() StoreConfig {
	return StoreConfig{
		Backend:         MemoryBackend,
		MongoDatabase:   "chess",
		MongoCollection: "games",
		Timeout:         5 * time.Second,
	}
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:  NewServerConfig(),
		Store:   NewStoreConfig(),
		LogFile: os.Stderr,
	}
}

// Load returns the defaults overlaid with any CHESSD_* environment
// variables, validated.
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port %q: %w", c.Server.Port, errors.ErrInvalidConfig)
	}

	switch c.Store.Backend {
	case MemoryBackend:
	case MongoBackend:
		if c.Store.MongoAddress == "" || c.Store.MongoDatabase == "" || c.Store.MongoCollection == "" {
			return fmt.Errorf("mongo store needs address, database and collection: %w", errors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("store backend %q: %w", c.Store.Backend, errors.ErrInvalidConfig)
	}

	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout %v: %w", c.Store.Timeout, errors.ErrInvalidConfig)
	}
	return nil
}
