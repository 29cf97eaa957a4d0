package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/data/database"
	"github.com/target/garage-api/internal/data/pgxutil"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
)

var userColumns = []string{"id", "username", "fullname", "password", "is_admin", "created_at", "updated_at"}

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a user whose Password already holds the bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if u == nil {
		return nil, ErrNilRequest
	}
	now := r.timeProvider.Now().UTC()
	out, err := pgxutil.QueryOne[model.User](ctx, r.DB, `
		INSERT INTO users (username, fullname, password, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+database.ColumnList(userColumns),
		u.Username, u.Fullname, u.Password, u.IsAdmin, now,
	)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create user: %w", err))
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	q, args := database.BuildListQuery(database.NewListQueryOptions("users",
		database.WithColumns(userColumns...),
		database.WithCondition(database.WhereCond("id", database.Equal, id)),
	))
	out, err := pgxutil.QueryOne[model.User](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get user by id: %w", err))
	}
	return &out, nil
}

// GetByUsername retrieves a user by exact (case-sensitive) username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	q, args := database.BuildListQuery(database.NewListQueryOptions("users",
		database.WithColumns(userColumns...),
		database.WithCondition(database.WhereCond("username", database.Equal, username)),
	))
	out, err := pgxutil.QueryOne[model.User](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get user by username: %w", err))
	}
	return &out, nil
}

// List retrieves users ordered by id.
func (r *UserRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.User, error) {
	q, args := pageQuery("users", userColumns, opts)
	rows, err := pgxutil.QueryAll[model.User](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list users: %w", err))
	}
	return toPtrs(rows), nil
}

// Update applies the set fields and bumps updated_at.
func (r *UserRepo) Update(ctx context.Context, id int64, upd core.UserUpdate) (*model.User, error) {
	set := database.NewUpdate("users")
	database.SetIf(set, "username", upd.Username)
	database.SetIf(set, "fullname", upd.Fullname)
	database.SetIf(set, "password", upd.PasswordHash)
	database.SetIf(set, "is_admin", upd.IsAdmin)
	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	set.Set("updated_at", r.timeProvider.Now().UTC())

	q, args := set.Build(id, userColumns)
	out, err := pgxutil.QueryOne[model.User](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("update user: %w", err))
	}
	return &out, nil
}

// Delete deletes a user by ID. Sessions owned by the user cascade.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := pgxutil.Exec(ctx, r.DB, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete user: %w", err))
	}
	return n > 0, nil
}

// --- helpers shared by repos ---

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

func normalizePage(opts model.ListOptions) (int, int) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	return limit, max(opts.Offset, 0)
}

func pageQuery(table string, cols []string, opts model.ListOptions) (string, []any) {
	limit, offset := normalizePage(opts)
	return database.BuildListQuery(database.NewListQueryOptions(table,
		database.WithColumns(cols...),
		database.WithOrderBy("id", "ASC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))
}

func toPtrs[T any](rows []T) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}
