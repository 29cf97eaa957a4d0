package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/garage-api/internal/data"
	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/testutil"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	session := domainauth.Session{ID: "test-session-1", UserID: 123, StartTime: time.Now()}
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.WithinDuration(t, session.StartTime, retrieved.StartTime, time.Millisecond)
}

func TestSessionStore_TTLTracksWindow(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	now := time.Now()
	store := NewSessionStore(client, time.Hour, WithClock(data.NewFixedTimeProvider(now)))
	ctx := context.Background()

	sess := domainauth.Session{ID: "ttl-session", UserID: 1, StartTime: now.Add(-40 * time.Minute)}
	require.NoError(t, store.Save(ctx, sess))

	ttl, err := client.TTL(ctx, "session:ttl-session").Result()
	require.NoError(t, err)
	assert.InDelta(t, (20 * time.Minute).Seconds(), ttl.Seconds(), 5)
}

func TestSessionStore_SaveExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client, time.Minute)

	err := store.Save(context.Background(), domainauth.Session{ID: "old", UserID: 1, StartTime: time.Now().Add(-time.Hour)})
	assert.Error(t, err)
}

func TestSessionStore_GetMissingAndDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client, time.Hour, WithPrefix("test:sess:"))
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "gone", UserID: 2, StartTime: time.Now()}))
	exists, err := client.Exists(ctx, "test:sess:gone").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	require.NoError(t, store.Delete(ctx, "gone"))
	require.NoError(t, store.Delete(ctx, "gone"))
	require.NoError(t, store.Delete(ctx, ""))

	_, err = store.Get(ctx, "gone")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}
