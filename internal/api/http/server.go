package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/api/http/handler"
	"github.com/Alijeyrad/taadol_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/taadol_backend/internal/api/http/router"
	"github.com/Alijeyrad/taadol_backend/pkg/constants"
	"github.com/Alijeyrad/taadol_backend/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client `optional:"true"`
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg)

	configureGlobalMiddleware(app, p.Cfg, p.Redis, p.OTel != nil)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			slog.Info("starting HTTP server", "addr", addr, "env", p.Cfg.Server.Environment)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			slog.Info("stopping HTTP server")
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp builds the fiber app with body limits, timeouts and request
// validation taken from config.
func NewApp(cfg *config.Config) *fiber.App {
	fc := fiber.Config{
		AppName:         constants.AppName,
		StructValidator: handler.NewStructValidator(),
	}
	if cfg.Server.BodyLimitMB > 0 {
		fc.BodyLimit = cfg.Server.BodyLimitMB << 20
	}
	if cfg.Server.TimeoutSeconds > 0 {
		timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		fc.ReadTimeout = timeout
		fc.WriteTimeout = timeout
	}
	return fiber.New(fc)
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client, telemetry bool) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if telemetry && cfg.Observability.Tracing.Enabled {
		app.Use(observability.FiberMiddleware(cfg.Observability.ServiceName))
	}

	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(corsConfig(cfg.Server.CORS)))
	}

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
		app.Use(middleware.NewLimiter(cfg.Server.RateLimit, rdb))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:request_id}] ${method} ${url} ${status} ${latency}\n",
	}))
}

func corsConfig(c config.CORSConfig) cors.Config {
	return cors.Config{
		AllowOrigins:     c.AllowOrigins,
		AllowMethods:     c.AllowMethods,
		AllowHeaders:     c.AllowHeaders,
		AllowCredentials: c.AllowCredentials,
		ExposeHeaders:    []string{middleware.HeaderRequestID, observability.TraceHeader},
		MaxAge:           c.MaxAgeSeconds,
	}
}
