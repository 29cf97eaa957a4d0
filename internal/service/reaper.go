package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/observability/metrics"
	"github.com/target/garage-api/internal/observability/statsd"
	"github.com/target/garage-api/internal/ports"
)

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Repo     core.SessionReaperRepository // Required
	Interval time.Duration                // Required: tick interval
	MaxAge   time.Duration                // Required: session validity window
	Clock    ports.Clock                  // Optional: defaults to real time
	Logger   *slog.Logger                 // Optional
	Metrics  statsd.Sink                  // Optional
}

// ReaperService purges session rows whose validity window has closed.
// Validity itself is always decided at resolve time; reaping only reclaims storage.
type ReaperService struct {
	repo     core.SessionReaperRepository
	interval time.Duration
	maxAge   time.Duration
	clock    ports.Clock
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Repo == nil {
		return nil, errors.New("SessionReaperRepository is required")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("reaper interval must be positive")
	}
	if opts.MaxAge <= 0 {
		return nil, errors.New("session max age must be positive")
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReaperService{
		repo:     opts.Repo,
		interval: opts.Interval,
		maxAge:   opts.MaxAge,
		clock:    clock,
		logger:   logger.With("component", "session_reaper"),
		metrics:  opts.Metrics,
	}, nil
}

// Run performs a cleanup after a short jitter and then on every tick until ctx ends.
// Returns nil on graceful shutdown (context.Canceled).
func (s *ReaperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting session reaper", "interval", s.interval, "max_age", s.maxAge)

	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.cleanupAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "session reaper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			s.cleanupAndLog(ctx)
		}
	}
}

// RunOnce deletes sessions that started before now - MaxAge.
func (s *ReaperService) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.maxAge)
	return s.repo.DeleteExpired(ctx, cutoff)
}

func (s *ReaperService) cleanupAndLog(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	n, err := s.RunOnce(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}
	elapsed := time.Since(start)
	metrics.EmitReaperRun(s.metrics, metrics.ReaperRun{Purged: n, Duration: elapsed, Err: err})
	if err != nil {
		s.logger.ErrorContext(ctx, "session cleanup failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "session cleanup complete", "deleted", n, "elapsed", elapsed)
}

// waitWithJitter adds a random delay up to 10% of the interval.
func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	timer := time.NewTimer(jitter)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
