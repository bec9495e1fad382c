package config

import "time"

// CacheConfig selects where scoreboards are cached and for how long.
type CacheConfig struct {
	Backend        string
	TTL            time.Duration
	RedisURL       string
	RedisKeyPrefix string
}

func loadCache() CacheConfig {
	backend := oneOf(envOrDefault(envCacheBackend, defaultCacheBackend), defaultCacheBackend, CacheMemory, CacheRedis)
	redisURL := envOrDefault(envRedisURL, "")
	if backend == CacheRedis && redisURL == "" {
		backend = CacheMemory
	}
	return CacheConfig{
		Backend:        backend,
		TTL:            durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		RedisURL:       redisURL,
		RedisKeyPrefix: envOrDefault(envRedisKeyPrefix, defaultRedisPrefix),
	}
}
