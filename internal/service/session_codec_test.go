package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/garage-api/internal/data"
	"github.com/target/garage-api/internal/data/cryptoutil"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
	"github.com/target/garage-api/internal/mocks"
	authmocks "github.com/target/garage-api/internal/mocks/auth"
	"github.com/target/garage-api/internal/mocks/memory"
	"go.uber.org/mock/gomock"
)

const testSessionWindow = 2 * time.Hour

type sessionFixture struct {
	codec *SessionCodec
	store *authmocks.MemorySessionStore
	users *memory.UserRepo
	enc   *cryptoutil.AESGCMEncryptor
	clock *data.FixedTimeProvider
	user  model.PublicUser
}

func testKey(b byte) []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = b
	}
	return k
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	enc, err := cryptoutil.NewAESGCMEncryptor(testKey(1))
	require.NoError(t, err)

	users := memory.NewUserRepo()
	u, err := users.Create(context.Background(), &model.User{Username: "alice", Fullname: "Alice", Password: "plain:secret123"})
	require.NoError(t, err)

	f := &sessionFixture{
		store: authmocks.NewMemorySessionStore(),
		users: users,
		enc:   enc,
		clock: data.NewFixedTimeProvider(testNow),
		user:  u.Public(),
	}
	f.codec, err = NewSessionCodec(SessionCodecOptions{
		Deps:     SessionCodecDeps{Store: f.store, Users: users, Encryptor: enc},
		Duration: testSessionWindow,
		Clock:    f.clock,
	})
	require.NoError(t, err)
	return f
}

func TestNewSessionCodec_Validation(t *testing.T) {
	enc, err := cryptoutil.NewAESGCMEncryptor(testKey(1))
	require.NoError(t, err)
	deps := SessionCodecDeps{Store: authmocks.NewMemorySessionStore(), Users: memory.NewUserRepo(), Encryptor: enc}

	tests := []struct {
		name string
		opts SessionCodecOptions
	}{
		{"no store", SessionCodecOptions{Deps: SessionCodecDeps{Users: deps.Users, Encryptor: enc}, Duration: time.Hour}},
		{"no users", SessionCodecOptions{Deps: SessionCodecDeps{Store: deps.Store, Encryptor: enc}, Duration: time.Hour}},
		{"no encryptor", SessionCodecOptions{Deps: SessionCodecDeps{Store: deps.Store, Users: deps.Users}, Duration: time.Hour}},
		{"zero duration", SessionCodecOptions{Deps: deps}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSessionCodec(tt.opts)
			require.Error(t, err)
		})
	}
}

func TestSessionCodec_IssueResolve(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	cred, err := f.codec.Issue(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Len())

	raw, err := f.enc.Decrypt(cred)
	require.NoError(t, err)
	sid, err := uuid.Parse(string(raw))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), sid.Version())
	assert.NotContains(t, cred, sid.String())

	id, err := f.codec.Resolve(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, f.user.ID, id.ID)

	again, err := f.codec.Resolve(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, testSessionWindow, f.codec.TTL())
}

func TestSessionCodec_Boundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		ok      bool
	}{
		{"just inside", testSessionWindow - time.Millisecond, true},
		{"exactly at window", testSessionWindow, true},
		{"just past", testSessionWindow + time.Millisecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			ctx := context.Background()
			cred, err := f.codec.Issue(ctx, f.user)
			require.NoError(t, err)

			f.clock.AddTime(tt.elapsed)
			id, err := f.codec.Resolve(ctx, cred)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, "alice", id.Username)
				return
			}
			require.ErrorIs(t, err, domainauth.ErrForbidden)
		})
	}
}

func TestSessionCodec_ResolveFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("tampered", func(t *testing.T) {
		f := newSessionFixture(t)
		cred, err := f.codec.Issue(ctx, f.user)
		require.NoError(t, err)
		tampered := []byte(cred)
		i := len("v1:") + 4
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		_, err = f.codec.Resolve(ctx, string(tampered))
		require.ErrorIs(t, err, domainauth.ErrForbidden)
	})

	t.Run("foreign key", func(t *testing.T) {
		f := newSessionFixture(t)
		other, err := cryptoutil.NewAESGCMEncryptor(testKey(2))
		require.NoError(t, err)
		cred, err := other.Encrypt([]byte(uuid.NewString()))
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			_, err = f.codec.Resolve(ctx, cred)
		})
		require.ErrorIs(t, err, domainauth.ErrForbidden)
	})

	t.Run("record deleted", func(t *testing.T) {
		f := newSessionFixture(t)
		cred, err := f.codec.Issue(ctx, f.user)
		require.NoError(t, err)
		raw, err := f.enc.Decrypt(cred)
		require.NoError(t, err)
		require.NoError(t, f.store.Delete(ctx, string(raw)))
		_, err = f.codec.Resolve(ctx, cred)
		require.ErrorIs(t, err, domainauth.ErrForbidden)
	})

	t.Run("owner deleted", func(t *testing.T) {
		f := newSessionFixture(t)
		cred, err := f.codec.Issue(ctx, f.user)
		require.NoError(t, err)
		_, err = f.users.Delete(ctx, f.user.ID)
		require.NoError(t, err)
		_, err = f.codec.Resolve(ctx, cred)
		require.ErrorIs(t, err, domainauth.ErrForbidden)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockSessionStore(ctrl)
		enc, err := cryptoutil.NewAESGCMEncryptor(testKey(1))
		require.NoError(t, err)
		codec, err := NewSessionCodec(SessionCodecOptions{
			Deps:     SessionCodecDeps{Store: store, Users: memory.NewUserRepo(), Encryptor: enc},
			Duration: time.Hour,
		})
		require.NoError(t, err)

		cred, err := enc.Encrypt([]byte(uuid.NewString()))
		require.NoError(t, err)
		store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domainauth.Session{}, errors.New("connection reset"))

		_, err = codec.Resolve(ctx, cred)
		require.ErrorIs(t, err, domainauth.ErrForbidden)
	})
}

func TestSessionCodec_Revoke(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	cred, err := f.codec.Issue(ctx, f.user)
	require.NoError(t, err)

	require.NoError(t, f.codec.Revoke(ctx, cred))
	assert.Equal(t, 0, f.store.Len())
	_, err = f.codec.Resolve(ctx, cred)
	require.ErrorIs(t, err, domainauth.ErrForbidden)

	require.NoError(t, f.codec.Revoke(ctx, cred))
	require.NoError(t, f.codec.Revoke(ctx, "garbage"))
}

func TestSessionCodec_IssueStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	enc, err := cryptoutil.NewAESGCMEncryptor(testKey(1))
	require.NoError(t, err)
	codec, err := NewSessionCodec(SessionCodecOptions{
		Deps:     SessionCodecDeps{Store: store, Users: memory.NewUserRepo(), Encryptor: enc},
		Duration: time.Hour,
		Clock:    data.NewFixedTimeProvider(testNow),
	})
	require.NoError(t, err)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sess domainauth.Session) error {
		assert.Equal(t, int64(9), sess.UserID)
		assert.Equal(t, testNow, sess.StartTime)
		return errors.New("disk full")
	})

	_, err = codec.Issue(context.Background(), model.PublicUser{ID: 9})
	require.Error(t, err)
}
