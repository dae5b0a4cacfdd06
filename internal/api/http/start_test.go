package http

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/api/http/router"
	"github.com/Alijeyrad/taadol_backend/internal/app"
)

// The dependency graph is checked without running any constructor, so no
// database or redis is needed.
func TestDependencyGraph(t *testing.T) {
	err := fx.ValidateApp(
		fx.Supply(&config.Config{}),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module,
		fx.Invoke(func(*fiber.App) {}),
	)
	if err != nil {
		t.Fatalf("fx.ValidateApp() error = %v", err)
	}
}

func TestNewAppLimits(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.BodyLimitMB = 2
	cfg.Server.TimeoutSeconds = 15

	app := NewApp(cfg)
	got := app.Config()
	if got.BodyLimit != 2<<20 {
		t.Errorf("BodyLimit = %d, want %d", got.BodyLimit, 2<<20)
	}
	if got.ReadTimeout.Seconds() != 15 {
		t.Errorf("ReadTimeout = %v, want 15s", got.ReadTimeout)
	}
	if got.StructValidator == nil {
		t.Error("StructValidator not configured")
	}
}
