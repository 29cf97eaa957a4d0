package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/garage-api/config"
	redisadapter "github.com/target/garage-api/internal/adapters/redis"
	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/data"
	"github.com/target/garage-api/internal/ports"
	"github.com/target/garage-api/internal/service"
)

// CodecDeps groups what the credential codec may need.
type CodecDeps struct {
	Config config.AuthConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Users  core.UserRepository
	Logger *slog.Logger
}

// BuildCredentialCodec returns the codec for the configured strategy.
//
//nolint:ireturn // the strategy is chosen at runtime.
func BuildCredentialCodec(deps CodecDeps) (ports.CredentialCodec, error) {
	cfg := deps.Config
	switch cfg.Strategy {
	case config.StrategyToken:
		return service.NewTokenCodec(service.TokenCodecOptions{
			Secret: []byte(cfg.TokenSecret),
			TTL:    cfg.TokenTTL,
			Logger: deps.Logger,
		})
	case config.StrategySession:
		store, err := buildSessionStore(deps)
		if err != nil {
			return nil, err
		}
		enc, err := CreateEncryptor(cfg.TokenSecret)
		if err != nil {
			return nil, fmt.Errorf("session encryptor: %w", err)
		}
		return service.NewSessionCodec(service.SessionCodecOptions{
			Deps:     service.SessionCodecDeps{Store: store, Users: deps.Users, Encryptor: enc},
			Duration: cfg.SessionDuration.Duration(),
			Logger:   deps.Logger,
		})
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.Strategy)
	}
}

//nolint:ireturn // postgres or redis, chosen by config.
func buildSessionStore(deps CodecDeps) (ports.SessionStore, error) {
	switch deps.Config.SessionStore {
	case config.SessionStoreRedis:
		if deps.Redis == nil {
			return nil, errors.New("redis session store selected but no redis client configured")
		}
		return redisadapter.NewSessionStore(deps.Redis, deps.Config.SessionDuration.Duration()), nil
	case config.SessionStorePostgres, "":
		if deps.DB == nil {
			return nil, errors.New("postgres session store requires a database")
		}
		return data.NewSessionRepo(deps.DB), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", deps.Config.SessionStore)
	}
}
