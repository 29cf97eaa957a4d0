// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters, internal/data and internal/service.
package ports

import (
	"context"
	"time"

	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
)

// SessionStore persists and retrieves server-side sessions.
// Get returns domainauth.ErrSessionNotFound on a miss.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// CredentialCodec issues and resolves the opaque credential handed to clients.
type CredentialCodec interface {
	// Issue creates a credential for the user.
	Issue(ctx context.Context, user model.PublicUser) (string, error)
	// Resolve verifies a credential and returns the identity it stands for.
	Resolve(ctx context.Context, credential string) (*domainauth.Identity, error)
	// Revoke invalidates the credential where the strategy keeps server state.
	Revoke(ctx context.Context, credential string) error
	// TTL is the credential lifetime, used for cookie Max-Age.
	TTL() time.Duration
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Encryptor seals short values into printable ciphertext and opens them again.
type Encryptor interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
