package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/target/garage-api/internal/data/database"
	"github.com/target/garage-api/internal/data/pgxutil"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
)

var carColumns = []string{"id", "brand", "model", "imported", "created_at", "updated_at"}

// CarRepo provides database operations for cars.
type CarRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCarRepo creates a new CarRepo with real time provider.
func NewCarRepo(db *sql.DB) *CarRepo {
	return &CarRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewCarRepoWithTimeProvider creates a new CarRepo with a custom time provider.
func NewCarRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CarRepo {
	return &CarRepo{DB: db, timeProvider: tp}
}

// Create inserts a new car.
func (r *CarRepo) Create(ctx context.Context, req *model.CreateCarRequest) (*model.Car, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	imported := req.Imported != nil && *req.Imported

	now := r.timeProvider.Now().UTC()
	out, err := pgxutil.QueryOne[model.Car](ctx, r.DB, `
		INSERT INTO cars (brand, model, imported, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING `+database.ColumnList(carColumns),
		req.Brand, req.Model, imported, now,
	)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create car: %w", err))
	}
	return &out, nil
}

// GetByID retrieves a car by ID.
func (r *CarRepo) GetByID(ctx context.Context, id int64) (*model.Car, error) {
	q, args := database.BuildListQuery(database.NewListQueryOptions("cars",
		database.WithColumns(carColumns...),
		database.WithCondition(database.WhereCond("id", database.Equal, id)),
	))
	out, err := pgxutil.QueryOne[model.Car](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get car by id: %w", err))
	}
	return &out, nil
}

// List retrieves cars ordered by id.
func (r *CarRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.Car, error) {
	q, args := pageQuery("cars", carColumns, opts)
	rows, err := pgxutil.QueryAll[model.Car](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list cars: %w", err))
	}
	return toPtrs(rows), nil
}

// Update updates fields of a car.
func (r *CarRepo) Update(ctx context.Context, id int64, req model.UpdateCarRequest) (*model.Car, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	set := database.NewUpdate("cars")
	database.SetIf(set, "brand", req.Brand)
	database.SetIf(set, "model", req.Model)
	database.SetIf(set, "imported", req.Imported)
	set.Set("updated_at", r.timeProvider.Now().UTC())

	q, args := set.Build(id, carColumns)
	out, err := pgxutil.QueryOne[model.Car](ctx, r.DB, q, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("update car: %w", err))
	}
	return &out, nil
}

// Delete deletes a car by ID.
func (r *CarRepo) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := pgxutil.Exec(ctx, r.DB, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete car: %w", err))
	}
	return n > 0, nil
}
