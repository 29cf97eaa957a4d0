package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
	apperrors "github.com/target/garage-api/internal/errors"
	"github.com/target/garage-api/internal/mocks"
	authmocks "github.com/target/garage-api/internal/mocks/auth"
	"github.com/target/garage-api/internal/mocks/memory"
	"go.uber.org/mock/gomock"
)

func newAuthFixture(t *testing.T) (*AuthService, *memory.UserRepo, *authmocks.StaticCodec) {
	t.Helper()
	users := memory.NewUserRepo()
	codec := authmocks.NewStaticCodec()
	svc, err := NewAuthService(AuthServiceOptions{Users: users, Hasher: authmocks.PlainHasher{}, Codec: codec})
	require.NoError(t, err)

	_, err = users.Create(context.Background(), &model.User{Username: "alice", Fullname: "Alice", Password: "plain:secret123"})
	require.NoError(t, err)
	return svc, users, codec
}

func TestNewAuthService_RequiresDeps(t *testing.T) {
	_, err := NewAuthService(AuthServiceOptions{})
	require.Error(t, err)
	_, err = NewAuthService(AuthServiceOptions{Users: memory.NewUserRepo()})
	require.Error(t, err)
	_, err = NewAuthService(AuthServiceOptions{Users: memory.NewUserRepo(), Hasher: authmocks.PlainHasher{}})
	require.Error(t, err)
}

func TestAuthService_LoginResolve(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	cred, err := svc.Login(ctx, model.LoginRequest{Username: "  alice ", Password: "secret123"})
	require.NoError(t, err)

	id, err := svc.Resolve(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
}

func TestAuthService_LoginRejects(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, domainauth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "bob", Password: "secret123"})
	require.ErrorIs(t, err, domainauth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "", Password: "x"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthService_LoginUnknownUserRunsDummyCompare(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	hasher := &countingHasher{}
	svc, err := NewAuthService(AuthServiceOptions{Users: users, Hasher: hasher, Codec: authmocks.NewStaticCodec()})
	require.NoError(t, err)

	users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, apperrors.NotFound("Resource not found")).Times(2)

	for range 2 {
		_, err = svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "pw"})
		require.ErrorIs(t, err, domainauth.ErrInvalidCredentials)
	}
	assert.Equal(t, 1, hasher.hashes)
	assert.Equal(t, 2, hasher.verifies)
}

func TestAuthService_LoginRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc, err := NewAuthService(AuthServiceOptions{Users: users, Hasher: authmocks.PlainHasher{}, Codec: authmocks.NewStaticCodec()})
	require.NoError(t, err)

	users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, errors.New("db down"))
	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainauth.ErrInvalidCredentials)
}

func TestAuthService_LoginIssueError(t *testing.T) {
	svc, _, codec := newAuthFixture(t)
	codec.IssueErr = errors.New("boom")
	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "secret123"})
	require.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	cred, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, cred))
	_, err = svc.Resolve(ctx, cred)
	require.Error(t, err)
	require.NoError(t, svc.Logout(ctx, ""))
}

type countingHasher struct {
	hashes   int
	verifies int
}

func (h *countingHasher) Hash(p string) (string, error) {
	h.hashes++
	return "h:" + p, nil
}

func (h *countingHasher) Verify(string, string) bool {
	h.verifies++
	return false
}
