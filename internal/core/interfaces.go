package core

import (
	"context"
	"time"

	"github.com/target/garage-api/internal/domain/model"
)

// Repository interfaces consumed by the service layer. Implementations live in
// internal/data; mocks are generated into internal/mocks.

// UserRepository defines the interface for user data operations.
// Errors are *errors.AppError values produced by errors.MapDBError.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.User, error)
	// Update applies the non-nil fields; PasswordHash replaces the stored hash when set.
	Update(ctx context.Context, id int64, upd UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserUpdate is the repository-level update: the plaintext password is
// already replaced by its hash.
type UserUpdate struct {
	Username     *string
	Fullname     *string
	PasswordHash *string
	IsAdmin      *bool
}

// CarRepository defines the interface for car data operations.
type CarRepository interface {
	Create(ctx context.Context, req *model.CreateCarRequest) (*model.Car, error)
	GetByID(ctx context.Context, id int64) (*model.Car, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.Car, error)
	Update(ctx context.Context, id int64, req model.UpdateCarRequest) (*model.Car, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SessionReaperRepository defines the interface for purging expired sessions.
type SessionReaperRepository interface {
	// DeleteExpired removes sessions that started before the cutoff and returns the count.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
