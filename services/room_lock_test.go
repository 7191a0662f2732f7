package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRoomLockerSerializes(t *testing.T) {
	locker := NewLocalRoomLocker()
	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), 1)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxActive)
}

func TestLocalRoomLockerContext(t *testing.T) {
	locker := NewLocalRoomLocker()
	unlock, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)

	other, err := locker.Lock(context.Background(), 2)
	require.NoError(t, err, "different rooms never block each other")
	other()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	again, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	again()
}

func TestRedisRoomLocker(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisRoomLocker(rdb, time.Minute, 50*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, mr.Exists(roomLockKey(4)))

	_, err = locker.Lock(context.Background(), 4)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	assert.False(t, mr.Exists(roomLockKey(4)))

	unlock, err = locker.Lock(context.Background(), 4)
	require.NoError(t, err)
	unlock()
}

func TestRedisRoomLockerReleaseOnlyByOwner(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisRoomLocker(rdb, time.Minute, 50*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), 9)
	require.NoError(t, err)

	// the lock expired and someone else took it
	require.NoError(t, mr.Set(roomLockKey(9), "someone-else"))
	unlock()

	val, err := mr.Get(roomLockKey(9))
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
}
