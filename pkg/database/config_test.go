package database

import (
	"testing"
	"time"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/catalog"
)

func TestFromCentralConfigDefaults(t *testing.T) {
	cfg := FromCentralConfig(config.DatabaseConfig{})

	if cfg.URI != DefaultConfig().URI {
		t.Errorf("URI = %q, want default", cfg.URI)
	}
	if cfg.Name != "taadol" {
		t.Errorf("Name = %q, want taadol", cfg.Name)
	}
	if cfg.MaxPoolSize != 50 {
		t.Errorf("MaxPoolSize = %d, want 50", cfg.MaxPoolSize)
	}
	if cfg.QueryTimeout() != 20*time.Second {
		t.Errorf("QueryTimeout() = %v, want 20s", cfg.QueryTimeout())
	}
}

func TestFromCentralConfigOverrides(t *testing.T) {
	cfg := FromCentralConfig(config.DatabaseConfig{
		URI:                   "mongodb://db:27017",
		Name:                  "prod",
		ConnectTimeoutSeconds: 3,
		Pool:                  config.DatabasePoolConfig{MaxPoolSize: 7},
	})

	if cfg.URI != "mongodb://db:27017" || cfg.Name != "prod" || cfg.MaxPoolSize != 7 {
		t.Errorf("FromCentralConfig() = %+v", cfg)
	}
	if cfg.ConnectTimeout() != 3*time.Second {
		t.Errorf("ConnectTimeout() = %v, want 3s", cfg.ConnectTimeout())
	}
}

func TestIndexesCoverDetailsCollections(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range Indexes() {
		if len(spec.Models) == 0 {
			t.Errorf("collection %s has no index models", spec.Collection)
		}
		seen[spec.Collection] = true
	}
	for _, s := range catalog.Sections() {
		if !seen[s.Collection] {
			t.Errorf("no index for details collection %s", s.Collection)
		}
	}
}
