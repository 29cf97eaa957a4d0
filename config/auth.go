package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Strategy selects how credentials are issued and resolved.
type Strategy string

const (
	// StrategyToken issues signed bearer tokens with no server-side state.
	StrategyToken Strategy = "token"
	// StrategySession issues encrypted ids of server-side session records.
	StrategySession Strategy = "session"
)

// UnmarshalText implements encoding.TextUnmarshaler for Strategy.
func (s *Strategy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "token", "session":
		*s = Strategy(v)
		return nil
	default:
		return fmt.Errorf("invalid Strategy: %q (valid options: token, session)", v)
	}
}

// SessionStoreKind selects where session records live.
type SessionStoreKind string

const (
	SessionStorePostgres SessionStoreKind = "postgres"
	SessionStoreRedis    SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "postgres", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: postgres, redis)", v)
	}
}

// LoginDelivery controls how a successful login hands the credential back.
type LoginDelivery string

const (
	// LoginDeliveryCookie sets an HttpOnly cookie and answers 204.
	LoginDeliveryCookie LoginDelivery = "cookie"
	// LoginDeliveryBody answers 200 with {"token": "..."}.
	LoginDeliveryBody LoginDelivery = "body"
)

// UnmarshalText implements encoding.TextUnmarshaler for LoginDelivery.
func (d *LoginDelivery) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "cookie", "body":
		*d = LoginDelivery(v)
		return nil
	default:
		return fmt.Errorf("invalid LoginDelivery: %q (valid options: cookie, body)", v)
	}
}

// Milliseconds is a duration configured as a plain integer count of milliseconds.
type Milliseconds time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for Milliseconds.
func (m *Milliseconds) UnmarshalText(text []byte) error {
	v := strings.TrimSpace(string(text))
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid Milliseconds: %q (expected a positive integer)", v)
	}
	*m = Milliseconds(time.Duration(n) * time.Millisecond)
	return nil
}

// Duration returns the value as a time.Duration.
func (m Milliseconds) Duration() time.Duration { return time.Duration(m) }

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Strategy determines which credential codec is used.
	Strategy Strategy `env:"AUTH_STRATEGY" envDefault:"token"`

	// CookieName is the cookie carrying the credential.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"auth_token"`

	// TokenSecret signs bearer tokens and derives the session-id encryption key.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// SessionDuration is the absolute session validity window, in milliseconds.
	SessionDuration Milliseconds `env:"SESSION_DURATION" envDefault:"86400000"`

	// SessionStore selects the session record backend.
	SessionStore SessionStoreKind `env:"SESSION_STORE" envDefault:"postgres"`

	// LoginDelivery selects cookie or response-body delivery of the credential.
	LoginDelivery LoginDelivery `env:"LOGIN_DELIVERY" envDefault:"cookie"`

	// Allowlist holds "METHOD /path" entries that skip authentication.
	Allowlist []string `env:"AUTH_ALLOWLIST" envDefault:"POST /users,POST /users/login" envSeparator:","`
}

// Sanitize trims allowlist entries and drops empty ones.
func (a *AuthConfig) Sanitize() {
	a.CookieName = strings.TrimSpace(a.CookieName)
	out := a.Allowlist[:0]
	for _, e := range a.Allowlist {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	a.Allowlist = out
}

// Validate checks the auth configuration for values that cannot work.
func (a *AuthConfig) Validate() error {
	if strings.TrimSpace(a.TokenSecret) == "" {
		return errors.New("TOKEN_SECRET is required")
	}
	if a.CookieName == "" {
		return errors.New("AUTH_COOKIE_NAME cannot be empty")
	}
	if a.Strategy == StrategyToken && a.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if a.Strategy == StrategySession && a.SessionDuration.Duration() <= 0 {
		return errors.New("SESSION_DURATION must be positive")
	}
	return nil
}

// CredentialTTL is the lifetime of a credential issued under the selected strategy.
func (a *AuthConfig) CredentialTTL() time.Duration {
	if a.Strategy == StrategySession {
		return a.SessionDuration.Duration()
	}
	return a.TokenTTL
}
