package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/scoreboard"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
)

// minRedisRetention keeps boards in redis well past the freshness TTL so a
// peer instance can still read them after a slow refresh.
const minRedisRetention = 10 * time.Minute

// newRedisClient is a var so tests can avoid dialing.
var newRedisClient = store.NewRedisClient

type cacheBundle struct {
	store   scoreboard.Store
	backend string
	close   func() error
}

func buildCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) cacheBundle {
	memory := cacheBundle{store: store.NewMemoryStore(), backend: config.CacheMemory}
	if cfg.Backend != config.CacheRedis {
		return memory
	}

	client, err := newRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logging.Warn(logger, "redis unavailable, caching in memory", "err", err)
		return memory
	}
	return cacheBundle{
		store:   store.NewRedisStore(client, cfg.RedisKeyPrefix, redisRetention(cfg.TTL), logger),
		backend: config.CacheRedis,
		close:   client.Close,
	}
}

func redisRetention(ttl time.Duration) time.Duration {
	if r := 10 * ttl; r > minRedisRetention {
		return r
	}
	return minRedisRetention
}
