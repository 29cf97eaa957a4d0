package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/domain/model"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, domainauth.Session{}))

	sess := domainauth.Session{ID: "s1", UserID: 1, StartTime: time.Now()}
	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestStaticCodec_IssueResolveRevoke(t *testing.T) {
	codec := NewStaticCodec()
	ctx := context.Background()

	cred, err := codec.Issue(ctx, model.PublicUser{ID: 9, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "cred-9", cred)

	id, err := codec.Resolve(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)

	require.NoError(t, codec.Revoke(ctx, cred))
	_, err = codec.Resolve(ctx, cred)
	assert.ErrorIs(t, err, domainauth.ErrForbidden)
	assert.Equal(t, 24*time.Hour, codec.TTL())
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.True(t, h.Verify("pw", hash))
	assert.False(t, h.Verify("other", hash))
	assert.False(t, h.Verify("pw", "pw"))
}
