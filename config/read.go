package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Alijeyrad/taadol_backend/pkg/constants"
)

var GlobalConf *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.name", "taadol")
	v.SetDefault("database.connect_timeout_seconds", 10)
	v.SetDefault("database.query_timeout_seconds", 20)
	v.SetDefault("database.pool.max_pool_size", 50)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.body_limit_mb", 4)
	v.SetDefault("server.rate_limit.max", 60)
	v.SetDefault("server.rate_limit.expiration_seconds", 30)
	v.SetDefault("commission.summary_concurrency", 4)
	v.SetDefault("commission.default_page_size", 10)
	v.SetDefault("commission.max_page_size", 50)
	v.SetDefault("reports.company_name", "Taadol")
	v.SetDefault("reports.font_family", "Vazirmatn")
	v.SetDefault("observability.service_name", constants.AppName)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output.stdout", true)
}

// bindEnv registers every known key so env overrides work even when the key
// is missing from the file.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"database.uri", "database.name",
		"redis.addr", "redis.password",
		"server.port", "server.environment",
		"reports.font_path",
		"observability.enabled", "observability.tracing.otlp_endpoint",
		"logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}
}

func ReadConfig(configPath string) (*Config, error) {
	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(filepath.Join(configPath, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	// Allow env vars to override config values.
	// e.g. TAADOL_DATABASE_URI overrides database.uri
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	bindEnv(v)

	// Read the config file (optional in Docker environments)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if os.Getenv(constants.EnvPrefix+"_DATABASE_URI") == "" {
			return nil, fmt.Errorf("no config file in %s and %s_DATABASE_URI is unset", configPath, constants.EnvPrefix)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}
