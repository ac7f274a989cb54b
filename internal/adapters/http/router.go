package http

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/http/handlers"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/http/middleware"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// ScopeExamplesWrite is the scope required on routes that change examples
// when authentication is enabled and auth.write_scope is unset.
const ScopeExamplesWrite = "examples:write"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig contains authentication header configuration.
	AuthConfig *config.AuthConfig

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler serves the /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// ExampleHandler serves /api/v1/examples.
	ExampleHandler *handlers.ExampleHandler

	// Timeout is the deadline set on every API request.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID and correlation ID
//  3. OpenTelemetry tracing and metrics
//  4. Logging (skips /-/ routes)
//  5. Timeout, on /api/v1 only
//
// Route groups:
//   - /-/: probes, build info and metrics, never authenticated
//   - /api/v1/: the example resource; writes need auth when enabled
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.ExampleHandler == nil {
		return
	}

	var writeMiddleware []gin.HandlerFunc
	if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
		writeMiddleware = append(writeMiddleware,
			middleware.RequireAuth(cfg.AuthConfig),
			middleware.RequireScopes(cfg.AuthConfig, cmp.Or(cfg.AuthConfig.WriteScope, ScopeExamplesWrite)),
		)
	}

	cfg.ExampleHandler.RegisterExampleRoutes(rg, writeMiddleware...)
}

// NewDefaultRouterConfig creates a RouterConfig with the default timeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg *config.AuthConfig,
	healthHandler *handlers.HealthHandler,
	exampleHandler *handlers.ExampleHandler,
) RouterConfig {
	return RouterConfig{
		Logger:         logger,
		AuthConfig:     authCfg,
		AppConfig:      appCfg,
		HealthHandler:  healthHandler,
		ExampleHandler: exampleHandler,
		Timeout:        DefaultRequestTimeout,
	}
}
