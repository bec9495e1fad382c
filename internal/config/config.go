package config

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	DefaultLeague   string
	DisplayTimezone string
	CORSOrigins     []string
	Cache           CacheConfig
	AutoRefresh     AutoRefreshConfig
	ESPN            ESPNConfig
	Log             logging.Config
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	league := defaultLeague
	if l, ok := leagues.Lookup(envOrDefault(envDefaultLeague, defaultLeague)); ok {
		league = l.Key
	}
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        oneOf(envOrDefault(envProvider, defaultProvider), defaultProvider, ProviderESPN, ProviderSample),
		DefaultLeague:   league,
		DisplayTimezone: envOrDefault(envDisplayTimezone, defaultDisplayTimezone),
		CORSOrigins:     listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Cache:           loadCache(),
		AutoRefresh:     loadAutoRefresh(league),
		ESPN:            loadESPN(),
		Log:             loadLog(),
		Metrics:         loadMetrics(),
	}
}

// Location resolves DisplayTimezone, falling back to UTC when unknown.
func (c Config) Location() *time.Location {
	if c.DisplayTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadLog() logging.Config {
	return logging.Config{
		Level:   envOrDefault(envLogLevel, defaultLogLevel),
		Format:  envOrDefault(envLogFormat, defaultLogFormat),
		Service: envOrDefault(envOtelService, metrics.DefaultServiceName),
		File:    envOrDefault(envLogFile, ""),
	}
}
