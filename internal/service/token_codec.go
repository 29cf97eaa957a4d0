package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
	"github.com/target/garage-api/internal/ports"
)

// DefaultTokenTTL is the bearer token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

var _ ports.CredentialCodec = (*TokenCodec)(nil)

// TokenCodecOptions groups dependencies for TokenCodec.
type TokenCodecOptions struct {
	Secret []byte        // Required: HMAC key
	TTL    time.Duration // Optional: defaults to DefaultTokenTTL
	Clock  ports.Clock   // Optional
	Logger *slog.Logger  // Optional
}

// TokenCodec issues HS256 JWTs that carry the user's public identity.
// It keeps no server state, so Revoke is a no-op.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	clock  ports.Clock
	logger *slog.Logger
	parser *jwt.Parser
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	IsAdmin  bool   `json:"is_admin"`
}

// NewTokenCodec constructs a TokenCodec.
func NewTokenCodec(opts TokenCodecOptions) (*TokenCodec, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	c := &TokenCodec{
		secret: append([]byte(nil), opts.Secret...),
		ttl:    opts.TTL,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTokenTTL
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "token_codec")
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	return c, nil
}

// Issue signs a token for the user.
func (c *TokenCodec) Issue(_ context.Context, user model.PublicUser) (string, error) {
	now := c.clock.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Username: user.Username,
		Fullname: user.Fullname,
		IsAdmin:  user.IsAdmin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Resolve verifies the token. Every failure is reported as domainauth.ErrInvalidOrExpired.
func (c *TokenCodec) Resolve(ctx context.Context, credential string) (*domainauth.Identity, error) {
	var claims tokenClaims
	_, err := c.parser.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		c.logger.DebugContext(ctx, "token rejected", "error", err)
		return nil, domainauth.ErrInvalidOrExpired
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		c.logger.DebugContext(ctx, "token rejected", "error", "invalid subject")
		return nil, domainauth.ErrInvalidOrExpired
	}
	return &domainauth.Identity{
		ID:       id,
		Username: claims.Username,
		Fullname: claims.Fullname,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// Revoke is a no-op for bearer tokens.
func (c *TokenCodec) Revoke(context.Context, string) error { return nil }

// TTL returns the token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }
