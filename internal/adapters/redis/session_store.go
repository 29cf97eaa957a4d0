// Package redis provides Redis-based adapters.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/garage-api/internal/data"
	domainauth "github.com/target/garage-api/internal/domain/auth"
)

const defaultPrefix = "session:"

// SessionStore keeps sessions as JSON values that expire when the session window closes.
// Expiry in Redis is housekeeping only; callers still apply Session.Valid.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	window time.Duration
	clock  data.TimeProvider
}

// Option configures a SessionStore.
type Option func(*SessionStore)

// WithPrefix overrides the key prefix (default "session:").
func WithPrefix(prefix string) Option {
	return func(s *SessionStore) { s.prefix = prefix }
}

// WithClock sets the time source used to compute key TTLs.
func WithClock(tp data.TimeProvider) Option {
	return func(s *SessionStore) { s.clock = tp }
}

// NewSessionStore creates a session store whose keys live for window past the session start.
func NewSessionStore(client redis.UniversalClient, window time.Duration, opts ...Option) *SessionStore {
	s := &SessionStore{
		client: client,
		prefix: defaultPrefix,
		window: window,
		clock:  data.RealTimeProvider{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

// Save stores the session. A session whose window already closed is not written.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := s.window - s.clock.Now().Sub(sess.StartTime)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get returns the session or domainauth.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, domainauth.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

// Delete removes the session. Missing keys are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
