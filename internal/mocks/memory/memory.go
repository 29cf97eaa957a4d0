// Package memory provides in-memory repository fakes that mimic the
// Postgres repositories' error mapping, for HTTP and service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
)

var (
	_ core.UserRepository = (*UserRepo)(nil)
	_ core.CarRepository  = (*CarRepo)(nil)
)

// UserRepo is an in-memory core.UserRepository.
type UserRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.User
}

// NewUserRepo creates an empty UserRepo.
func NewUserRepo() *UserRepo {
	return &UserRepo{rows: make(map[int64]model.User)}
}

func (r *UserRepo) usernameTaken(name string, except int64) bool {
	for id, u := range r.rows {
		if id != except && u.Username == name {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usernameTaken(u.Username, 0) {
		return nil, apperrors.ConflictField("username", "This value already exists. Please choose a different one.")
	}
	r.nextID++
	now := time.Now().UTC()
	row := *u
	row.ID, row.CreatedAt, row.UpdatedAt = r.nextID, now, now
	r.rows[row.ID] = row
	return &row, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Resource not found")
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("Resource not found")
}

func (r *UserRepo) List(_ context.Context, opts model.ListOptions) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.User, 0, len(r.rows))
	for _, u := range r.rows {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, opts), nil
}

func (r *UserRepo) Update(_ context.Context, id int64, upd core.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Resource not found")
	}
	if upd.Username != nil {
		if r.usernameTaken(*upd.Username, id) {
			return nil, apperrors.ConflictField("username", "This value already exists. Please choose a different one.")
		}
		u.Username = *upd.Username
	}
	if upd.Fullname != nil {
		u.Fullname = *upd.Fullname
	}
	if upd.PasswordHash != nil {
		u.Password = *upd.PasswordHash
	}
	if upd.IsAdmin != nil {
		u.IsAdmin = *upd.IsAdmin
	}
	u.UpdatedAt = time.Now().UTC()
	r.rows[id] = u
	return &u, nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

// CarRepo is an in-memory core.CarRepository.
type CarRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Car
}

// NewCarRepo creates an empty CarRepo.
func NewCarRepo() *CarRepo {
	return &CarRepo{rows: make(map[int64]model.Car)}
}

func (r *CarRepo) Create(_ context.Context, req *model.CreateCarRequest) (*model.Car, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	c := model.Car{
		ID:        r.nextID,
		Brand:     req.Brand,
		Model:     req.Model,
		Imported:  req.Imported != nil && *req.Imported,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.rows[c.ID] = c
	return &c, nil
}

func (r *CarRepo) GetByID(_ context.Context, id int64) (*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Resource not found")
	}
	return &c, nil
}

func (r *CarRepo) List(_ context.Context, opts model.ListOptions) ([]*model.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.Car, 0, len(r.rows))
	for _, c := range r.rows {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, opts), nil
}

func (r *CarRepo) Update(_ context.Context, id int64, req model.UpdateCarRequest) (*model.Car, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Resource not found")
	}
	if req.Brand != nil {
		c.Brand = *req.Brand
	}
	if req.Model != nil {
		c.Model = *req.Model
	}
	if req.Imported != nil {
		c.Imported = *req.Imported
	}
	c.UpdatedAt = time.Now().UTC()
	r.rows[id] = c
	return &c, nil
}

func (r *CarRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func page[T any](all []T, opts model.ListOptions) []*T {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	start := min(max(opts.Offset, 0), len(all))
	end := min(start+limit, len(all))
	out := make([]*T, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, &all[i])
	}
	return out
}
