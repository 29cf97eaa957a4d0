package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/target/garage-api/config"
	"github.com/target/garage-api/internal/adapters/reaper"
	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/data"
	"github.com/target/garage-api/internal/data/cryptoutil"
	"github.com/target/garage-api/internal/observability/statsd"
	"github.com/target/garage-api/internal/ports"
	"github.com/target/garage-api/internal/service"
	"golang.org/x/sync/errgroup"
)

// ServiceContainer holds the application services.
type ServiceContainer struct {
	Auth  *service.AuthService
	Users *service.UserService
	Cars  *service.CarService
}

// ServiceDeps contains dependencies for creating services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger

	// Overrides used by tests; the Postgres repositories are used when nil.
	Users  core.UserRepository
	Cars   core.CarRepository
	Hasher ports.PasswordHasher
}

// NewServices wires repositories, the credential codec and the services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service dependencies are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := deps.Users
	if users == nil {
		users = data.NewUserRepo(deps.DB)
	}
	cars := deps.Cars
	if cars == nil {
		cars = data.NewCarRepo(deps.DB)
	}
	hasher := deps.Hasher
	if hasher == nil {
		hasher = cryptoutil.NewBcryptHasher()
	}

	codec, err := BuildCredentialCodec(CodecDeps{
		Config: deps.Config.Auth,
		DB:     deps.DB,
		Redis:  deps.RedisClient,
		Users:  users,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("credential codec: %w", err)
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:  users,
		Hasher: hasher,
		Codec:  codec,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("auth service: %w", err)
	}
	userSvc, err := service.NewUserService(service.UserServiceOptions{Repo: users, Hasher: hasher})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("user service: %w", err)
	}
	carSvc, err := service.NewCarService(service.CarServiceOptions{Repo: cars})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("car service: %w", err)
	}

	return ServiceContainer{Auth: authSvc, Users: userSvc, Cars: carSvc}, nil
}

// ServiceOrchestrationConfig contains configuration for running services.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
	Metrics  statsd.Sink
}

// RunServicesWithShutdown runs the enabled services until SIGINT/SIGTERM or
// until one of them fails, then shuts the rest down.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runServices(ctx, cfg)
}

func runServices(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Build everything before starting anything so a wiring error leaks nothing.
	var srv *http.Server
	if cfg.Config.IsHTTPServerEnabled() {
		var err error
		srv, err = NewHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
			Metrics:  cfg.Metrics,
		})
		if err != nil {
			return err
		}
	}

	var runner *reaper.Runner
	if cfg.Config.IsReaperEnabled() {
		var err error
		runner, err = reaper.NewRunner(reaper.RunnerOptions{
			DB:              cfg.DB,
			Config:          cfg.Config.Reaper,
			SessionDuration: cfg.Config.Auth.SessionDuration.Duration(),
			Logger:          logger,
			Metrics:         cfg.Metrics,
		})
		if err != nil {
			return fmt.Errorf("reaper: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if srv != nil {
		g.Go(func() error {
			logger.InfoContext(gctx, "starting HTTP server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return ShutdownHTTPServer(ShutdownConfig{Server: srv, Logger: logger})
		})
	}

	if runner != nil {
		g.Go(func() error {
			if err := runner.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("reaper: %w", err)
			}
			return nil
		})
	}

	err := g.Wait()
	logger.Info("services stopped")
	return err
}
