package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
database:
  uri: mongodb://localhost:27017
  name: taadol_test
server:
  port: 9090
  environment: production
commission:
  summary_concurrency: 8
reports:
  font_path: fonts/Vazirmatn.ttf
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestReadConfig(t *testing.T) {
	dir := writeConfig(t, sampleConfig)

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Database.Name != "taadol_test" {
		t.Errorf("Database.Name = %q, want taadol_test", cfg.Database.Name)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Commission.SummaryConcurrency != 8 {
		t.Errorf("Commission.SummaryConcurrency = %d, want 8", cfg.Commission.SummaryConcurrency)
	}
	// defaults fill what the file leaves out
	if cfg.Commission.DefaultPageSize != 10 {
		t.Errorf("Commission.DefaultPageSize = %d, want default 10", cfg.Commission.DefaultPageSize)
	}
	if cfg.Database.QueryTimeoutSeconds != 20 {
		t.Errorf("Database.QueryTimeoutSeconds = %d, want default 20", cfg.Database.QueryTimeoutSeconds)
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("TAADOL_DATABASE_NAME", "from_env")
	t.Setenv("TAADOL_SERVER_PORT", "7000")

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Database.Name != "from_env" {
		t.Errorf("Database.Name = %q, want from_env", cfg.Database.Name)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
}

func TestReadConfigDotEnv(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 8081\n")
	env := "TAADOL_DATABASE_URI=mongodb://dotenv:27017\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TAADOL_DATABASE_URI") })

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Database.URI != "mongodb://dotenv:27017" {
		t.Errorf("Database.URI = %q, want value from .env", cfg.Database.URI)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	t.Setenv("TAADOL_DATABASE_URI", "")

	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("ReadConfig() expected error without file or env")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{URI: "mongodb://x", Name: "db"},
			Server:   ServerConfig{Port: 8080, Environment: "development"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing uri", func(c *Config) { c.Database.URI = "" }, "database.uri"},
		{"missing name", func(c *Config) { c.Database.Name = " " }, "database.name"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "server.environment"},
		{"page sizes", func(c *Config) {
			c.Commission.DefaultPageSize = 100
			c.Commission.MaxPageSize = 10
		}, "default_page_size"},
		{"sampling", func(c *Config) { c.Observability.Tracing.SamplingRate = 2 }, "sampling_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
