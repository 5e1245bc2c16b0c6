package redis

import (
	redis_models "SteamProfile/models/redis"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()})), mr
}

func TestRedisOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("Session Operations", func(t *testing.T) {
		rc, mr := setupMiniRedis(t)
		session := &redis_models.CachedSession{
			SessionID: "abc",
			UserID:    7,
			Username:  "gabe",
			Email:     "gabe@valve.com",
			ExpiresAt: time.Now().Add(time.Hour),
		}

		require.NoError(t, rc.SaveSession(ctx, session))
		assert.True(t, mr.Exists("session:abc"))
		assert.InDelta(t, time.Hour.Seconds(), mr.TTL("session:abc").Seconds(), 5)

		got, err := rc.GetSession(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, uint(7), got.UserID)
		assert.Equal(t, "gabe", got.Username)

		require.NoError(t, rc.DeleteSession(ctx, "abc"))
		got, err = rc.GetSession(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Expired sessions are not cached", func(t *testing.T) {
		rc, mr := setupMiniRedis(t)
		require.NoError(t, rc.SaveSession(ctx, &redis_models.CachedSession{SessionID: "old", ExpiresAt: time.Now().Add(-time.Minute)}))
		assert.False(t, mr.Exists("session:old"))
	})

	t.Run("Last seen is popped once", func(t *testing.T) {
		rc, _ := setupMiniRedis(t)
		at := time.Unix(1700000000, 0).UTC()
		require.NoError(t, rc.TouchSession(ctx, "s1", at))
		require.NoError(t, rc.TouchSession(ctx, "s2", at.Add(time.Minute)))

		entries, err := rc.PopLastSeen(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, at, entries["s1"])

		entries, err = rc.PopLastSeen(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Restoring last seen keeps newer touches", func(t *testing.T) {
		rc, _ := setupMiniRedis(t)
		old := time.Unix(1700000000, 0).UTC()
		newer := old.Add(time.Minute)
		require.NoError(t, rc.TouchSession(ctx, "s1", newer))

		require.NoError(t, rc.RestoreLastSeen(ctx, map[string]time.Time{"s1": old, "s2": old}))

		entries, err := rc.PopLastSeen(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]time.Time{"s1": newer, "s2": old}, entries)
	})

	t.Run("Presence", func(t *testing.T) {
		rc, _ := setupMiniRedis(t)

		presence, err := rc.GetPresence(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, presence.Online)

		require.NoError(t, rc.SetPresence(ctx, "gabe", true))
		presence, err = rc.GetPresence(ctx, "gabe")
		require.NoError(t, err)
		assert.True(t, presence.Online)
	})

	t.Run("CleanupKeys", func(t *testing.T) {
		rc, mr := setupMiniRedis(t)
		require.NoError(t, mr.Set("presence:a", "x"))
		require.NoError(t, rc.CleanupKeys(ctx, []string{"presence:a", "missing"}))
		assert.False(t, mr.Exists("presence:a"))
	})
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rc, err := InitRedis(mr.Addr(), 0)
	require.NoError(t, err)
	assert.NoError(t, CloseRedis(rc))

	rc, err = InitRedis("redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	assert.NoError(t, CloseRedis(rc))

	_, err = InitRedis("redis://%zz", 0)
	assert.Error(t, err)
}
