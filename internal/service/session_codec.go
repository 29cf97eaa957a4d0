package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/target/garage-api/internal/core"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
	"github.com/target/garage-api/internal/ports"
)

var _ ports.CredentialCodec = (*SessionCodec)(nil)

// SessionCodecDeps groups the collaborators of SessionCodec.
type SessionCodecDeps struct {
	Store     ports.SessionStore  // Required
	Users     core.UserRepository // Required: resolves the session owner
	Encryptor ports.Encryptor     // Required: seals session ids
}

// SessionCodecOptions groups dependencies for SessionCodec.
type SessionCodecOptions struct {
	Deps     SessionCodecDeps
	Duration time.Duration // Required: absolute validity window
	Clock    ports.Clock   // Optional
	Logger   *slog.Logger  // Optional
}

// SessionCodec hands out encrypted ids of server-side session records.
type SessionCodec struct {
	store    ports.SessionStore
	users    core.UserRepository
	enc      ports.Encryptor
	duration time.Duration
	clock    ports.Clock
	logger   *slog.Logger
}

// NewSessionCodec constructs a SessionCodec.
func NewSessionCodec(opts SessionCodecOptions) (*SessionCodec, error) {
	switch {
	case opts.Deps.Store == nil:
		return nil, errors.New("session store is required")
	case opts.Deps.Users == nil:
		return nil, errors.New("user repository is required")
	case opts.Deps.Encryptor == nil:
		return nil, errors.New("encryptor is required")
	case opts.Duration <= 0:
		return nil, errors.New("session duration must be positive")
	}
	c := &SessionCodec{
		store:    opts.Deps.Store,
		users:    opts.Deps.Users,
		enc:      opts.Deps.Encryptor,
		duration: opts.Duration,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "session_codec")
	return c, nil
}

// Issue persists a new session for the user and returns its encrypted id.
func (c *SessionCodec) Issue(ctx context.Context, user model.PublicUser) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	sess := domainauth.Session{ID: id.String(), UserID: user.ID, StartTime: c.clock.Now()}
	if err := c.store.Save(ctx, sess); err != nil {
		return "", err
	}
	return c.enc.Encrypt([]byte(sess.ID))
}

// Resolve decrypts the credential and loads the live session and its owner.
// Every failure is reported as domainauth.ErrForbidden.
func (c *SessionCodec) Resolve(ctx context.Context, credential string) (*domainauth.Identity, error) {
	raw, err := c.enc.Decrypt(credential)
	if err != nil {
		c.logger.DebugContext(ctx, "session credential rejected", "step", "decrypt", "error", err)
		return nil, domainauth.ErrForbidden
	}
	sess, err := c.store.Get(ctx, string(raw))
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			c.logger.DebugContext(ctx, "session credential rejected", "step", "lookup")
		} else {
			c.logger.ErrorContext(ctx, "session lookup failed", "error", err)
		}
		return nil, domainauth.ErrForbidden
	}
	if !sess.Valid(c.clock.Now(), c.duration) {
		c.logger.DebugContext(ctx, "session credential rejected", "step", "expired", "session_id", sess.ID)
		return nil, domainauth.ErrForbidden
	}
	user, err := c.users.GetByID(ctx, sess.UserID)
	if err != nil {
		c.logger.DebugContext(ctx, "session credential rejected", "step", "owner", "error", err)
		return nil, domainauth.ErrForbidden
	}
	return domainauth.IdentityFromUser(user.Public()), nil
}

// Revoke deletes the session behind the credential. Unreadable or unknown
// credentials are ignored so logout stays idempotent.
func (c *SessionCodec) Revoke(ctx context.Context, credential string) error {
	raw, err := c.enc.Decrypt(credential)
	if err != nil {
		return nil
	}
	if err := c.store.Delete(ctx, string(raw)); err != nil && !errors.Is(err, domainauth.ErrSessionNotFound) {
		return err
	}
	return nil
}

// TTL returns the session window.
func (c *SessionCodec) TTL() time.Duration { return c.duration }
