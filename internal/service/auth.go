package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/target/garage-api/internal/core"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
	"github.com/target/garage-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  core.UserRepository   // Required
	Hasher ports.PasswordHasher  // Required
	Codec  ports.CredentialCodec // Required
	Logger *slog.Logger          // Optional
}

// AuthService checks passwords and turns users into credentials via the configured codec.
type AuthService struct {
	users  core.UserRepository
	hasher ports.PasswordHasher
	codec  ports.CredentialCodec
	logger *slog.Logger
	dummy  func() (string, error)
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Hasher == nil {
		return nil, errors.New("PasswordHasher is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("CredentialCodec is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hasher := opts.Hasher
	return &AuthService{
		users:  opts.Users,
		hasher: hasher,
		codec:  opts.Codec,
		logger: logger.With("component", "auth_service"),
		dummy: sync.OnceValues(func() (string, error) {
			return hasher.Hash("garage-dummy-password")
		}),
	}, nil
}

// Login verifies the username and password and issues a credential.
// Unknown users and wrong passwords both yield domainauth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return "", fmt.Errorf("lookup user: %w", err)
		}
		// Equalize timing with the known-user path.
		if hash, hashErr := s.dummy(); hashErr == nil {
			s.hasher.Verify(req.Password, hash)
		}
		s.logger.DebugContext(ctx, "login rejected", "reason", "unknown user")
		return "", domainauth.ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		s.logger.DebugContext(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		return "", domainauth.ErrInvalidCredentials
	}

	cred, err := s.codec.Issue(ctx, user.Public())
	if err != nil {
		return "", fmt.Errorf("issue credential: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return cred, nil
}

// Logout revokes the credential.
func (s *AuthService) Logout(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	return s.codec.Revoke(ctx, credential)
}

// Resolve maps a credential to the identity it stands for.
func (s *AuthService) Resolve(ctx context.Context, credential string) (*domainauth.Identity, error) {
	return s.codec.Resolve(ctx, credential)
}

// TTL is the lifetime of issued credentials.
func (s *AuthService) TTL() time.Duration { return s.codec.TTL() }
