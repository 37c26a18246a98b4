// Package dedup remembers recently processed payment ids so webhook retries
// do not send duplicate confirmation emails. It is best-effort: entries
// expire after a window and nothing survives a restart of the memory store.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/pkg/config"
)

const DefaultWindow = time.Hour

// Store tracks processed payment ids.
type Store interface {
	// Seen reports whether id was marked within the current window.
	Seen(ctx context.Context, id string) (bool, error)
	// MarkSeen records id and reports whether it was already present. Only
	// the caller that gets false owns the id.
	MarkSeen(ctx context.Context, id string) (alreadySeen bool, err error)
	// Forget removes id so a retried delivery is processed again.
	Forget(ctx context.Context, id string) error
}

type params struct {
	fx.In

	LC  fx.Lifecycle
	Cfg *config.Config
	Log *zap.SugaredLogger
}

// NewStore builds the backend selected by dedup.backend and ties its
// lifetime to the application.
func NewStore(p params) (Store, error) {
	window := p.Cfg.Dedup.Window
	if window <= 0 {
		window = DefaultWindow
	}
	switch p.Cfg.Dedup.Backend {
	case config.DedupBackendRedis:
		if p.Cfg.Dedup.RedisURL == "" {
			return nil, fmt.Errorf("dedup: redis backend selected but dedup.redis_url is empty")
		}
		opts, err := redis.ParseURL(p.Cfg.Dedup.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("dedup: parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		s := NewRedisStore(client, window)
		p.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("dedup: redis ping: %w", err)
				}
				p.Log.Infow("dedup store ready", "backend", "redis", "window", window)
				return nil
			},
			OnStop: func(ctx context.Context) error { return client.Close() },
		})
		return s, nil
	case config.DedupBackendMemory, "":
		s := NewMemoryStore(window)
		p.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				s.Start()
				p.Log.Infow("dedup store ready", "backend", "memory", "window", window)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				s.Stop()
				return nil
			},
		})
		return s, nil
	default:
		return nil, fmt.Errorf("dedup: unknown backend %q", p.Cfg.Dedup.Backend)
	}
}

var Module = fx.Options(
	fx.Provide(NewStore),
)
