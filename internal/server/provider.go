package server

import (
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/espn"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/sample"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.ScoreProvider {
	switch cfg.Provider {
	case config.ProviderESPN, "":
		return newESPNProvider(cfg.ESPN, logger)
	case config.ProviderSample:
		return sample.New()
	default:
		logging.Warn(logger, "unknown provider, falling back to espn", slog.String(logging.FieldProvider, cfg.Provider))
		return newESPNProvider(cfg.ESPN, logger)
	}
}

func newESPNProvider(cfg config.ESPNConfig, logger *slog.Logger) *espn.Provider {
	client := espn.NewClient(espn.Config{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	return espn.NewProvider(client, cfg.MaxGames, logger)
}
