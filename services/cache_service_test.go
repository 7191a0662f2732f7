package services

import (
	"context"
	"testing"
	"time"

	"hotelsite/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewRedisCache(rdb)
	ctx := context.Background()

	var rooms []models.Room
	ok, err := cache.Get(ctx, roomListKeyPrefix+"all", &rooms)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []models.Room{{ID: 1, Name: "Garden", RoomNumber: "101", Features: []string{"wifi", "balcony"}}}
	require.NoError(t, cache.Set(ctx, roomListKeyPrefix+"all", in, time.Minute))

	ok, err = cache.Get(ctx, roomListKeyPrefix+"all", &rooms)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Garden", rooms[0].Name)
	assert.Equal(t, []string{"wifi", "balcony"}, []string(rooms[0].Features))

	mr.FastForward(2 * time.Minute)
	ok, err = cache.Get(ctx, roomListKeyPrefix+"all", &rooms)
	require.NoError(t, err)
	assert.False(t, ok, "entry expires after its ttl")
}

func TestRedisCacheDeletePattern(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewRedisCache(rdb)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, roomListKeyPrefix+"a", 1, 0))
	require.NoError(t, cache.Set(ctx, roomListKeyPrefix+"b", 2, 0))
	require.NoError(t, cache.Set(ctx, dashboardKeyPrefix+"2024-06-10", 3, 0))

	require.NoError(t, cache.DeletePattern(ctx, roomListKeyPrefix+"*"))
	assert.False(t, mr.Exists(roomListKeyPrefix+"a"))
	assert.False(t, mr.Exists(roomListKeyPrefix+"b"))
	assert.True(t, mr.Exists(dashboardKeyPrefix+"2024-06-10"))

	require.NoError(t, cache.DeletePattern(ctx, "nothing:*"))
}
