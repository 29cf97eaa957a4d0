package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/target/garage-api/internal/data/pgxutil"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	apperrors "github.com/target/garage-api/internal/errors"
)

// SessionRepo stores sessions in the sessions table.
type SessionRepo struct {
	DB *sql.DB
}

// NewSessionRepo creates a new SessionRepo.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

// Save inserts the session, replacing any row with the same id.
func (r *SessionRepo) Save(ctx context.Context, sess domainauth.Session) error {
	_, err := pgxutil.Exec(ctx, r.DB, `
		INSERT INTO sessions (id, user_id, start_time) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, start_time = EXCLUDED.start_time`,
		sess.ID, sess.UserID, sess.StartTime.UTC(),
	)
	if err != nil {
		return apperrors.MapDBError(fmt.Errorf("save session: %w", err))
	}
	return nil
}

// Get returns the session or domainauth.ErrSessionNotFound.
func (r *SessionRepo) Get(ctx context.Context, id string) (domainauth.Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	out, err := pgxutil.QueryOne[domainauth.Session](ctx, r.DB,
		`SELECT id::text AS id, user_id, start_time FROM sessions WHERE id = $1`, uid.String())
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return domainauth.Session{}, domainauth.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("get session: %w", mapped)
	}
	return out, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	if _, err := pgxutil.Exec(ctx, r.DB, `DELETE FROM sessions WHERE id = $1`, uid.String()); err != nil {
		return apperrors.MapDBError(fmt.Errorf("delete session: %w", err))
	}
	return nil
}

// DeleteExpired removes sessions that started before the cutoff.
func (r *SessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	n, err := pgxutil.Exec(ctx, r.DB, `DELETE FROM sessions WHERE start_time < $1`, before.UTC())
	if err != nil {
		return 0, apperrors.MapDBError(fmt.Errorf("delete expired sessions: %w", err))
	}
	return n, nil
}
