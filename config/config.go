package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Credential strategy, cookie and allowlist configuration
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server and CORS configuration
//   - services.go: Service mode and reaper configuration
//   - observability.go: StatsD metrics
type AppConfig struct {
	// LogLevel is the minimum slog level (debug, info, warn, error).
	LogLevel LogLevel `env:"LOG_LEVEL" envDefault:"info"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http"`

	// Reaper configuration
	Reaper ReaperConfig

	// Metrics configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.Reaper.Sanitize()
	c.Observability.Sanitize()
}

// Validate reports configuration combinations that cannot start.
func (c *AppConfig) Validate() error {
	services, err := c.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("invalid service configuration: %w", err)
	}
	if len(services) == 0 {
		return errors.New("no services enabled")
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}
	if services[ServiceModeReaper] && !c.ReaperApplicable() {
		return errors.New("reaper requires AUTH_STRATEGY=session with SESSION_STORE=postgres")
	}
	return nil
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsReaperEnabled returns true if the session reaper service is enabled.
func (c *AppConfig) IsReaperEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeReaper]
}

// ReaperApplicable reports whether session rows exist in Postgres to be reaped.
func (c *AppConfig) ReaperApplicable() bool {
	return c.Auth.Strategy == StrategySession && c.Auth.SessionStore == SessionStorePostgres
}

// UsesRedis reports whether any configured component needs a Redis connection.
func (c *AppConfig) UsesRedis() bool {
	return c.Auth.Strategy == StrategySession && c.Auth.SessionStore == SessionStoreRedis
}

// LogLevel wraps slog.Level so it can be parsed from env.
type LogLevel slog.Level

// UnmarshalText implements encoding.TextUnmarshaler for LogLevel.
func (l *LogLevel) UnmarshalText(text []byte) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(string(text)))); err != nil {
		return fmt.Errorf("invalid LogLevel: %q (valid options: debug, info, warn, error)", string(text))
	}
	*l = LogLevel(lvl)
	return nil
}

// Level returns the slog level.
func (l LogLevel) Level() slog.Level { return slog.Level(l) }
