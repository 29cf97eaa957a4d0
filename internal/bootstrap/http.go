package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/garage-api/config"
	httpx "github.com/target/garage-api/internal/http"
	"github.com/target/garage-api/internal/observability/statsd"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
	Metrics  statsd.Sink
}

// BuildHTTPHandler compiles the allowlist and returns the full middleware-wrapped router.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	allowlist, err := httpx.NewAllowlist(appCfg.Auth.Allowlist)
	if err != nil {
		return nil, fmt.Errorf("auth allowlist: %w", err)
	}
	logger.Info("auth allowlist compiled", "patterns", allowlist.Patterns())

	return httpx.NewRouter(httpx.RouterServices{
		Auth:           cfg.Services.Auth,
		Users:          cfg.Services.Users,
		Cars:           cfg.Services.Cars,
		Allowlist:      allowlist,
		CookieName:     appCfg.Auth.CookieName,
		CookieDomain:   appCfg.HTTP.CookieDomain,
		LoginDelivery:  appCfg.Auth.LoginDelivery,
		AllowedOrigins: appCfg.HTTP.AllowedOrigins,
		Logger:         logger,
		Metrics:        cfg.Metrics,
	})
}

// NewHTTPServer builds the server; the caller starts it.
func NewHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return nil, err
	}

	addr := cfg.Config.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}, nil
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Server *http.Server
	Logger *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
