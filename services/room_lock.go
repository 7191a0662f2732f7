package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout is returned when a room lock could not be acquired before the wait deadline.
var ErrLockTimeout = errors.New("timed out waiting for room lock")

// RoomLocker serializes booking writes per room. The returned function releases the lock.
type RoomLocker interface {
	Lock(ctx context.Context, roomID uint) (unlock func(), err error)
}

// LocalRoomLocker is a keyed mutex for single-instance deployments.
type LocalRoomLocker struct {
	mu    sync.Mutex
	slots map[uint]chan struct{}
}

func NewLocalRoomLocker() *LocalRoomLocker {
	return &LocalRoomLocker{slots: make(map[uint]chan struct{})}
}

func (l *LocalRoomLocker) Lock(ctx context.Context, roomID uint) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[roomID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[roomID] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release only deletes the key while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisRoomLocker holds a SET NX PX lock per room so several API instances share one
// serialization point.
type RedisRoomLocker struct {
	rdb      *redis.Client
	ttl      time.Duration
	wait     time.Duration
	interval time.Duration
}

func NewRedisRoomLocker(rdb *redis.Client, ttl, wait time.Duration) *RedisRoomLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &RedisRoomLocker{rdb: rdb, ttl: ttl, wait: wait, interval: 25 * time.Millisecond}
}

func roomLockKey(roomID uint) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

func (l *RedisRoomLocker) Lock(ctx context.Context, roomID uint) (func(), error) {
	key := roomLockKey(roomID)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return func() {
				// the caller's context may already be done
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err()
			}, nil
		}
		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		}
	}
}
