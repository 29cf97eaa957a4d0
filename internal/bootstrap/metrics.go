package bootstrap

import (
	"context"
	"log/slog"

	"github.com/target/garage-api/config"
	"github.com/target/garage-api/internal/observability/statsd"
)

// InitMetrics returns the metrics sink and a function that releases it.
// Disabled or unreachable StatsD falls back to a sink that drops everything.
//
//nolint:ireturn // the sink is either a live client or a discard sink.
func InitMetrics(ctx context.Context, cfg config.ObservabilityConfig, logger *slog.Logger) (statsd.Sink, func() error) {
	noop := func() error { return nil }
	if !cfg.IsEnabled() {
		return statsd.Discard{}, noop
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := statsd.NewClient(ctx, statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  cfg.MetricsPrefix,
		Logger:  logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to initialise statsd client", "error", err)
		return statsd.Discard{}, noop
	}
	logger.InfoContext(ctx, "statsd metrics enabled", "addr", cfg.StatsdAddress, "prefix", cfg.MetricsPrefix)
	return client, client.Close
}
