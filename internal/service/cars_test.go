package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
	"github.com/target/garage-api/internal/mocks"
	"github.com/target/garage-api/internal/testutil"
	"go.uber.org/mock/gomock"
)

func newCarService(t *testing.T) (*mocks.MockCarRepository, *CarService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCarRepository(ctrl)
	svc, err := NewCarService(CarServiceOptions{Repo: repo})
	require.NoError(t, err)
	return repo, svc
}

func TestCarService_Create(t *testing.T) {
	repo, svc := newCarService(t)
	req := &model.CreateCarRequest{Brand: " Volvo ", Model: "240"}
	repo.EXPECT().Create(gomock.Any(), req).Return(&model.Car{ID: 1, Brand: "Volvo", Model: "240"}, nil)

	car, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Volvo", req.Brand)
	assert.Equal(t, int64(1), car.ID)
}

func TestCarService_Validation(t *testing.T) {
	_, svc := newCarService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateCarRequest{Brand: "Volvo"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(ctx, 1, model.UpdateCarRequest{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(ctx, 1, model.UpdateCarRequest{Brand: testutil.StringPtr("  ")})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCarService_UpdateDelete(t *testing.T) {
	repo, svc := newCarService(t)
	ctx := context.Background()

	upd := model.UpdateCarRequest{Imported: testutil.BoolPtr(true)}
	repo.EXPECT().Update(ctx, int64(2), upd).Return(&model.Car{ID: 2, Imported: true}, nil)
	car, err := svc.Update(ctx, 2, upd)
	require.NoError(t, err)
	assert.True(t, car.Imported)

	repo.EXPECT().Delete(ctx, int64(2)).Return(false, nil)
	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, 2)))
}
