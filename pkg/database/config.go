package database

import (
	"time"

	"github.com/Alijeyrad/taadol_backend/config"
)

// Config holds MongoDB connection and behavior settings
type Config struct {
	URI  string
	Name string

	// Timeouts
	ConnectTimeoutSeconds int
	QueryTimeoutSeconds   int

	// Connection pooling
	MaxPoolSize        uint64
	MinPoolSize        uint64
	MaxConnIdleMinutes int
}

// DefaultConfig returns sensible defaults for database configuration
func DefaultConfig() Config {
	return Config{
		URI:                   "mongodb://localhost:27017",
		Name:                  "taadol",
		ConnectTimeoutSeconds: 10,
		QueryTimeoutSeconds:   20,
		MaxPoolSize:           50,
		MinPoolSize:           0,
		MaxConnIdleMinutes:    5,
	}
}

// ConnectTimeout returns the connect timeout as a duration
func (c Config) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// QueryTimeout bounds every single driver operation.
func (c Config) QueryTimeout() time.Duration {
	if c.QueryTimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

func (c Config) MaxConnIdleTime() time.Duration {
	if c.MaxConnIdleMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.MaxConnIdleMinutes) * time.Minute
}

// FromCentralConfig converts central config.DatabaseConfig to package Config
func FromCentralConfig(c config.DatabaseConfig) Config {
	def := DefaultConfig()
	cfg := Config{
		URI:                   c.URI,
		Name:                  c.Name,
		ConnectTimeoutSeconds: c.ConnectTimeoutSeconds,
		QueryTimeoutSeconds:   c.QueryTimeoutSeconds,
		MaxPoolSize:           c.Pool.MaxPoolSize,
		MinPoolSize:           c.Pool.MinPoolSize,
		MaxConnIdleMinutes:    c.Pool.MaxConnIdleMinutes,
	}
	if cfg.URI == "" {
		cfg.URI = def.URI
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = def.MaxPoolSize
	}
	return cfg
}
