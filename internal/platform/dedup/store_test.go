package dedup

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/pkg/config"
)

func newRedisStore(t *testing.T, window time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, window), mr
}

func stores(t *testing.T) map[string]Store {
	rs, _ := newRedisStore(t, time.Hour)
	return map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"redis":  rs,
	}
}

func TestStore_MarkSeenForget(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seen, err := s.Seen(ctx, "pay_123")
			require.NoError(t, err)
			require.False(t, seen)

			already, err := s.MarkSeen(ctx, "pay_123")
			require.NoError(t, err)
			require.False(t, already)

			already, err = s.MarkSeen(ctx, "pay_123")
			require.NoError(t, err)
			require.True(t, already)

			seen, err = s.Seen(ctx, "pay_123")
			require.NoError(t, err)
			require.True(t, seen)

			require.NoError(t, s.Forget(ctx, "pay_123"))
			seen, err = s.Seen(ctx, "pay_123")
			require.NoError(t, err)
			require.False(t, seen)

			require.NoError(t, s.Forget(ctx, "never_marked"))
		})
	}
}

func TestStore_ConcurrentMarkSeenHasOneWinner(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var winners atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					already, err := s.MarkSeen(ctx, "pay_race")
					if err == nil && !already {
						winners.Add(1)
					}
				}()
			}
			wg.Wait()
			require.EqualValues(t, 1, winners.Load())
		})
	}
}

func TestMemoryStore_ClearLoop(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	_, _ = s.MarkSeen(context.Background(), "pay_1")
	require.Equal(t, 1, s.Len())

	s.Start()
	s.Start()
	defer s.Stop()
	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_StopWithoutStart(t *testing.T) {
	s := NewMemoryStore(0)
	require.NotPanics(t, s.Stop)
}

func TestRedisStore_Expires(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	_, err := s.MarkSeen(ctx, "pay_ttl")
	require.NoError(t, err)
	require.Equal(t, time.Minute, mr.TTL(keyPrefix+"pay_ttl"))

	mr.FastForward(2 * time.Minute)
	seen, err := s.Seen(ctx, "pay_ttl")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestNewStore_SelectsBackend(t *testing.T) {
	log := zap.NewNop().Sugar()

	lc := fxtest.NewLifecycle(t)
	s, err := NewStore(params{LC: lc, Cfg: &config.Config{}, Log: log})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)
	lc.RequireStart().RequireStop()

	mr := miniredis.RunT(t)
	lc = fxtest.NewLifecycle(t)
	s, err = NewStore(params{LC: lc, Cfg: &config.Config{Dedup: config.DedupConfig{
		Backend: config.DedupBackendRedis, RedisURL: "redis://" + mr.Addr(),
	}}, Log: log})
	require.NoError(t, err)
	require.IsType(t, &RedisStore{}, s)
	lc.RequireStart().RequireStop()

	_, err = NewStore(params{LC: fxtest.NewLifecycle(t), Cfg: &config.Config{Dedup: config.DedupConfig{Backend: config.DedupBackendRedis}}, Log: log})
	require.Error(t, err)

	_, err = NewStore(params{LC: fxtest.NewLifecycle(t), Cfg: &config.Config{Dedup: config.DedupConfig{Backend: "memcached"}}, Log: log})
	require.Error(t, err)
}
