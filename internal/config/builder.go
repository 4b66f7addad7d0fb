package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithAddress sets the listen host and port.
func (b *ConfigBuilder) WithAddress(host, port string) *ConfigBuilder {
	b.cfg.Server.Host = host
	b.cfg.Server.Port = port
	return b
}

// WithAllowOrigins sets the CORS origin list.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithMemoryStore keeps snapshots in process memory.
func (b *ConfigBuilder) WithMemoryStore() *ConfigBuilder {
	b.cfg.Store.Backend = MemoryBackend
	return b
}

// WithMongoStore keeps snapshots in a MongoDB collection.
func (b *ConfigBuilder) WithMongoStore(address, database, collection string) *ConfigBuilder {
	b.cfg.Store.Backend = MongoBackend
	b.cfg.Store.MongoAddress = address
	b.cfg.Store.MongoDatabase = database
	b.cfg.Store.MongoCollection = collection
	return b
}

// WithStoreTimeout sets the per-operation store timeout.
func (b *ConfigBuilder) WithStoreTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Store.Timeout = d
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
