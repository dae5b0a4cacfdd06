package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/taadol_backend/config"
)

// Config holds Redis connection settings. Redis only backs the HTTP rate
// limiter, so an empty Addr disables it.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// FromCentralConfig fills a Config from config.RedisConfig, using defaults
// for every unset pool size and timeout.
func FromCentralConfig(c config.RedisConfig) Config {
	def := DefaultConfig()
	return Config{
		Addr:         c.Addr,
		DB:           c.DB,
		Username:     c.Username,
		Password:     c.Password,
		PoolSize:     positive(c.PoolSize, def.PoolSize),
		MinIdleConns: positive(c.MinIdleConns, def.MinIdleConns),
		DialTimeout:  seconds(c.DialTimeoutSeconds, def.DialTimeout),
		ReadTimeout:  seconds(c.ReadTimeoutSeconds, def.ReadTimeout),
		WriteTimeout: seconds(c.WriteTimeoutSeconds, def.WriteTimeout),
	}
}

func (c Config) Enabled() bool { return c.Addr != "" }

func (c Config) options() *goredis.Options {
	return &goredis.Options{
		Addr:         c.Addr,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

func positive(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func seconds(v int, def time.Duration) time.Duration {
	if v > 0 {
		return time.Duration(v) * time.Second
	}
	return def
}
