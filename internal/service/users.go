package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
	"github.com/target/garage-api/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo   core.UserRepository  // Required
	Hasher ports.PasswordHasher // Required
}

// UserService manages accounts. Every value it returns is a public view.
type UserService struct {
	repo   core.UserRepository
	hasher ports.PasswordHasher
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) (*UserService, error) {
	if opts.Repo == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Hasher == nil {
		return nil, errors.New("PasswordHasher is required")
	}
	return &UserService{repo: opts.Repo, hasher: opts.Hasher}, nil
}

// Create registers a user with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (model.PublicUser, error) {
	if req == nil {
		return model.PublicUser{}, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return model.PublicUser{}, apperrors.Validation(err.Error())
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Username: req.Username,
		Fullname: req.Fullname,
		Password: hash,
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return model.PublicUser{}, err
	}
	return created.Public(), nil
}

// GetByID returns a user.
func (s *UserService) GetByID(ctx context.Context, id int64) (model.PublicUser, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, opts model.ListOptions) ([]model.PublicUser, error) {
	users, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Update applies the set fields, re-hashing the password when one is given.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return model.PublicUser{}, apperrors.Validation(err.Error())
	}
	upd := core.UserUpdate{
		Username: req.Username,
		Fullname: req.Fullname,
		IsAdmin:  req.IsAdmin,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}
	u, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

// Delete removes a user. A missing user is reported as NotFound.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFoundf("user %d not found", id)
	}
	return nil
}
