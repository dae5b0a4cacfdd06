package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Server        ServerConfig        `mapstructure:"server"`
	Commission    CommissionConfig    `mapstructure:"commission"`
	Reports       ReportsConfig       `mapstructure:"reports"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type DatabaseConfig struct {
	URI                   string             `mapstructure:"uri"`
	Name                  string             `mapstructure:"name"`
	ConnectTimeoutSeconds int                `mapstructure:"connect_timeout_seconds"`
	QueryTimeoutSeconds   int                `mapstructure:"query_timeout_seconds"`
	Pool                  DatabasePoolConfig `mapstructure:"pool"`
	Indexes               IndexesConfig      `mapstructure:"indexes"`
}

type DatabasePoolConfig struct {
	MaxPoolSize        uint64 `mapstructure:"max_pool_size"`
	MinPoolSize        uint64 `mapstructure:"min_pool_size"`
	MaxConnIdleMinutes int    `mapstructure:"max_conn_idle_minutes"`
}

type IndexesConfig struct {
	// EnsureOnStart creates missing indexes when the HTTP server boots.
	EnsureOnStart bool `mapstructure:"ensure_on_start"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type RateLimitConfig struct {
	Max               int `mapstructure:"max"`
	ExpirationSeconds int `mapstructure:"expiration_seconds"`
}

type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Environment    string          `mapstructure:"environment"`
	BodyLimitMB    int             `mapstructure:"body_limit_mb"`
	CORS           CORSConfig      `mapstructure:"cors"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

type CommissionConfig struct {
	// SummaryConcurrency bounds parallel member computations in summaries.
	SummaryConcurrency int `mapstructure:"summary_concurrency"`
	DefaultPageSize    int `mapstructure:"default_page_size"`
	MaxPageSize        int `mapstructure:"max_page_size"`
}

type ReportsConfig struct {
	CompanyName string `mapstructure:"company_name"`
	// FontPath points to a UTF-8 TTF font used for Persian text in PDFs.
	// Without it the core Helvetica font is used.
	FontPath   string `mapstructure:"font_path"`
	FontFamily string `mapstructure:"font_family"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Database.URI) == "" {
		errs = append(errs, errors.New("database.uri is required"))
	}
	if strings.TrimSpace(c.Database.Name) == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.Server.Environment != "" && !validEnvironments[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("server.environment %q is not one of development, staging, production", c.Server.Environment))
	}
	if c.Commission.SummaryConcurrency < 0 {
		errs = append(errs, errors.New("commission.summary_concurrency must not be negative"))
	}
	if c.Commission.MaxPageSize > 0 && c.Commission.DefaultPageSize > c.Commission.MaxPageSize {
		errs = append(errs, errors.New("commission.default_page_size exceeds commission.max_page_size"))
	}
	if r := c.Observability.Tracing.SamplingRate; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("observability.tracing.sampling_rate %v must be within [0, 1]", r))
	}

	return errors.Join(errs...)
}
