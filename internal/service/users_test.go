package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
	"github.com/target/garage-api/internal/mocks"
	authmocks "github.com/target/garage-api/internal/mocks/auth"
	"github.com/target/garage-api/internal/testutil"
	"go.uber.org/mock/gomock"
)

func newUserService(t *testing.T) (*mocks.MockUserRepository, *UserService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	svc, err := NewUserService(UserServiceOptions{Repo: repo, Hasher: authmocks.PlainHasher{}})
	require.NoError(t, err)
	return repo, svc
}

func TestUserService_Create(t *testing.T) {
	repo, svc := newUserService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *model.User) (*model.User, error) {
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "plain:secret123", u.Password)
		assert.True(t, u.IsAdmin)
		out := *u
		out.ID = 1
		return &out, nil
	})

	got, err := svc.Create(ctx, &model.CreateUserRequest{
		Username: " alice ",
		Fullname: "Alice",
		Password: "secret123",
		IsAdmin:  testutil.BoolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PublicUser{ID: 1, Username: "alice", Fullname: "Alice", IsAdmin: true}, got)
}

func TestUserService_CreateValidation(t *testing.T) {
	_, svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(ctx, &model.CreateUserRequest{Username: "alice", Fullname: "Alice"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_CreateConflict(t *testing.T) {
	repo, svc := newUserService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ConflictField("username", "taken"))

	_, err := svc.Create(context.Background(), &model.CreateUserRequest{Username: "alice", Fullname: "A", Password: "pw"})
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "username", apperrors.GetField(err))
}

func TestUserService_List(t *testing.T) {
	repo, svc := newUserService(t)
	opts := model.ListOptions{Limit: 10}
	repo.EXPECT().List(gomock.Any(), opts).Return([]*model.User{
		{ID: 1, Username: "a", Password: "hash"},
		{ID: 2, Username: "b", Password: "hash"},
	}, nil)

	got, err := svc.List(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Username)
}

func TestUserService_UpdateRehashes(t *testing.T) {
	repo, svc := newUserService(t)
	repo.EXPECT().Update(gomock.Any(), int64(3), gomock.Any()).DoAndReturn(func(_ context.Context, _ int64, upd core.UserUpdate) (*model.User, error) {
		require.NotNil(t, upd.PasswordHash)
		assert.Equal(t, "plain:newpass", *upd.PasswordHash)
		assert.Nil(t, upd.Username)
		return &model.User{ID: 3, Username: "c"}, nil
	})

	got, err := svc.Update(context.Background(), 3, model.UpdateUserRequest{Password: testutil.StringPtr("newpass")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestUserService_UpdateNoFields(t *testing.T) {
	_, svc := newUserService(t)
	_, err := svc.Update(context.Background(), 3, model.UpdateUserRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_GetAndDelete(t *testing.T) {
	repo, svc := newUserService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(5)).Return(nil, apperrors.NotFound("Resource not found"))
	_, err := svc.GetByID(ctx, 5)
	assert.True(t, apperrors.IsNotFound(err))

	repo.EXPECT().Delete(ctx, int64(5)).Return(false, nil)
	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, 5)))

	repo.EXPECT().Delete(ctx, int64(6)).Return(true, nil)
	require.NoError(t, svc.Delete(ctx, 6))
}
