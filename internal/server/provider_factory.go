package server

import (
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/sample"
)

// providerFactory assembles the primary provider with shared wrappers (throttle + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.ScoreProvider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

// wrap decorates upstream providers. Generated sample data is returned as is
// so its provenance survives.
func (f providerFactory) wrap(cfg config.Config, base providers.ScoreProvider) providers.ScoreProvider {
	if _, ok := base.(*sample.Generator); ok {
		return base
	}
	throttled := providers.NewThrottledProvider(base, cfg.ESPN.MinInterval, f.logger)
	return providers.NewRetryingProvider(throttled, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.ESPN.MaxAttempts, 0)
}
