// Package reaper provides adapters for running the expired session reaper.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/target/garage-api/config"
	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/data"
	"github.com/target/garage-api/internal/observability/statsd"
	"github.com/target/garage-api/internal/service"
)

// Runner constructs the reaper service over the sessions table and runs its loop.
type Runner struct {
	reaper *service.ReaperService
	logger *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB              *sql.DB
	Config          config.ReaperConfig
	SessionDuration time.Duration
	Logger          *slog.Logger
	Metrics         statsd.Sink

	// Repo overrides the Postgres session repository.
	Repo core.SessionReaperRepository
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.DB == nil && opts.Repo == nil {
		return nil, errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	repo := opts.Repo
	if repo == nil {
		repo = data.NewSessionRepo(opts.DB)
	}

	reaper, err := service.NewReaperService(service.ReaperServiceOptions{
		Repo:     repo,
		Interval: opts.Config.Interval,
		MaxAge:   opts.SessionDuration,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire reaper service: %w", err)
	}

	return &Runner{reaper: reaper, logger: opts.Logger}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting reaper runner")
	return r.reaper.Run(ctx)
}
