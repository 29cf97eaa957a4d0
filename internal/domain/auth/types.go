// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"errors"
	"time"

	"github.com/target/garage-api/internal/domain/model"
)

var (
	// ErrInvalidOrExpired is returned when a bearer token fails verification.
	ErrInvalidOrExpired = errors.New("invalid or expired token")
	// ErrForbidden is returned when a session credential cannot be resolved.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned by login on unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound is returned by session stores on a miss.
	ErrSessionNotFound = errors.New("session not found")
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	IsAdmin  bool   `json:"is_admin"`
}

// IdentityFromUser builds an Identity from a user's public view.
func IdentityFromUser(u model.PublicUser) *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		IsAdmin:  u.IsAdmin,
	}
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque time-ordered identifier; it is only handed out encrypted.
type Session struct {
	ID        string    `json:"id"         db:"id"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	StartTime time.Time `json:"start_time" db:"start_time"`
}

// Valid reports whether the session is still inside its absolute window.
// A session exactly d old is still valid.
func (s Session) Valid(now time.Time, d time.Duration) bool {
	return now.Sub(s.StartTime) <= d
}

// ExpiresAt is the last instant at which the session is valid.
func (s Session) ExpiresAt(d time.Duration) time.Time {
	return s.StartTime.Add(d)
}
