package service

import (
	"context"
	"errors"

	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
)

// CarServiceOptions groups dependencies for CarService.
type CarServiceOptions struct {
	Repo core.CarRepository
}

// CarService wraps car persistence with request validation.
type CarService struct {
	repo core.CarRepository
}

// NewCarService constructs a new CarService.
func NewCarService(opts CarServiceOptions) (*CarService, error) {
	if opts.Repo == nil {
		return nil, errors.New("CarRepository is required")
	}
	return &CarService{repo: opts.Repo}, nil
}

// Create validates and stores a car.
func (s *CarService) Create(ctx context.Context, req *model.CreateCarRequest) (*model.Car, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.repo.Create(ctx, req)
}

// GetByID returns a car.
func (s *CarService) GetByID(ctx context.Context, id int64) (*model.Car, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of cars.
func (s *CarService) List(ctx context.Context, opts model.ListOptions) ([]*model.Car, error) {
	return s.repo.List(ctx, opts)
}

// Update applies the set fields.
func (s *CarService) Update(ctx context.Context, id int64, req model.UpdateCarRequest) (*model.Car, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a car. A missing car is reported as NotFound.
func (s *CarService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFoundf("car %d not found", id)
	}
	return nil
}
