package config

import "time"

const (
	envPort               = "PORT"
	envProvider           = "PROVIDER"
	envDefaultLeague      = "DEFAULT_LEAGUE"
	envCacheTTL           = "CACHE_TTL"
	envCacheBackend       = "CACHE_BACKEND"
	envRedisURL           = "REDIS_URL"
	envRedisKeyPrefix     = "REDIS_KEY_PREFIX"
	envAutoRefreshEnabled = "AUTO_REFRESH_ENABLED"
	envAutoRefreshEvery   = "AUTO_REFRESH_INTERVAL"
	envAutoRefreshLeagues = "AUTO_REFRESH_LEAGUES"
	envEspnBaseURL        = "ESPN_BASE_URL"
	envEspnUserAgent      = "ESPN_USER_AGENT"
	envEspnTimeout        = "ESPN_TIMEOUT"
	envMaxGames           = "MAX_GAMES"
	envFetchMaxAttempts   = "FETCH_MAX_ATTEMPTS"
	envFetchMinInterval   = "FETCH_MIN_INTERVAL"
	envCORSOrigins        = "CORS_ALLOWED_ORIGINS"
	envDisplayTimezone    = "DISPLAY_TIMEZONE"
	envLogLevel           = "LOG_LEVEL"
	envLogFormat          = "LOG_FORMAT"
	envLogFile            = "LOG_FILE"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envMetricsPath        = "METRICS_PATH"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort          = "4000"
	defaultProvider      = ProviderESPN
	defaultLeague        = "mlb"
	defaultCacheTTL      = 3 * time.Minute
	defaultCacheBackend  = CacheMemory
	defaultRedisPrefix   = "scores"
	defaultAutoRefresh   = true
	defaultRefreshEvery  = 10 * time.Second
	defaultEspnBaseURL   = "https://www.espn.com"
	defaultEspnTimeout   = 10 * time.Second
	defaultMaxGames      = 15
	defaultFetchAttempts = 2
	// Keeps repeated manual refreshes from hammering the scoreboard page.
	defaultFetchInterval   = 2 * time.Second
	defaultCORSOrigins     = "*"
	defaultDisplayTimezone = "UTC"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultMetricsPort     = "9090"
	defaultMetricsPath     = "/metrics"
)

// Provider names accepted by PROVIDER.
const (
	ProviderESPN   = "espn"
	ProviderSample = "sample"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)
