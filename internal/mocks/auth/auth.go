// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
	"github.com/target/garage-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.CredentialCodec = (*StaticCodec)(nil)
	_ ports.PasswordHasher  = PlainHasher{}
)

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StaticCodec issues "cred-<id>" credentials and resolves the ones it issued.
// Revoked credentials stop resolving.
type StaticCodec struct {
	mu       sync.Mutex
	issued   map[string]domainauth.Identity
	Lifetime time.Duration

	// IssueErr, when set, is returned by Issue.
	IssueErr error
}

// NewStaticCodec creates a StaticCodec with a 24h TTL.
func NewStaticCodec() *StaticCodec {
	return &StaticCodec{issued: make(map[string]domainauth.Identity), Lifetime: 24 * time.Hour}
}

func (c *StaticCodec) Issue(_ context.Context, user model.PublicUser) (string, error) {
	if c.IssueErr != nil {
		return "", c.IssueErr
	}
	cred := "cred-" + strconv.FormatInt(user.ID, 10)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued[cred] = *domainauth.IdentityFromUser(user)
	return cred, nil
}

func (c *StaticCodec) Resolve(_ context.Context, credential string) (*domainauth.Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.issued[credential]
	if !ok {
		return nil, domainauth.ErrForbidden
	}
	return &id, nil
}

func (c *StaticCodec) Revoke(_ context.Context, credential string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.issued, credential)
	return nil
}

func (c *StaticCodec) TTL() time.Duration { return c.Lifetime }

// PlainHasher "hashes" by prefixing, for tests that do not want bcrypt cost.
type PlainHasher struct{}

const plainPrefix = "plain:"

func (PlainHasher) Hash(plaintext string) (string, error) {
	return plainPrefix + plaintext, nil
}

func (PlainHasher) Verify(plaintext, hash string) bool {
	stored, ok := strings.CutPrefix(hash, plainPrefix)
	return ok && stored == plaintext
}
