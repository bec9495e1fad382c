package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
)

func TestBuildCacheDefaultsToMemory(t *testing.T) {
	cache := buildCache(context.Background(), config.CacheConfig{}, nil)
	if _, ok := cache.store.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", cache.store)
	}
	if cache.close != nil {
		t.Fatalf("expected no closer for memory cache")
	}
}

func TestBuildCacheFallsBackWhenRedisUnavailable(t *testing.T) {
	orig := newRedisClient
	defer func() { newRedisClient = orig }()
	newRedisClient = func(ctx context.Context, url string) (*redis.Client, error) {
		return nil, errors.New("connection refused")
	}

	cache := buildCache(context.Background(), config.CacheConfig{Backend: config.CacheRedis, RedisURL: "redis://localhost:1"}, nil)
	if cache.backend != config.CacheMemory {
		t.Fatalf("expected memory fallback, got %s", cache.backend)
	}
}

func TestBuildCacheUsesRedis(t *testing.T) {
	orig := newRedisClient
	defer func() { newRedisClient = orig }()
	newRedisClient = func(ctx context.Context, url string) (*redis.Client, error) {
		return redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), nil
	}

	cache := buildCache(context.Background(), config.CacheConfig{Backend: config.CacheRedis, RedisURL: "redis://x", TTL: time.Minute}, nil)
	if _, ok := cache.store.(*store.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", cache.store)
	}
	if cache.close == nil {
		t.Fatalf("expected redis closer")
	}
	if err := cache.close(); err != nil {
		t.Fatalf("expected clean close, got %v", err)
	}
}

func TestRedisRetention(t *testing.T) {
	if got := redisRetention(time.Minute); got != minRedisRetention {
		t.Fatalf("expected minimum retention, got %s", got)
	}
	if got := redisRetention(5 * time.Minute); got != 50*time.Minute {
		t.Fatalf("expected 10x ttl, got %s", got)
	}
}
