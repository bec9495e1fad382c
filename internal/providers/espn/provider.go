package espn

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

// Provider turns ESPN scoreboard pages into games.
type Provider struct {
	fetcher  providers.PayloadFetcher
	maxGames int
	logger   *slog.Logger
}

// NewProvider builds a Provider reading pages from fetcher.
func NewProvider(fetcher providers.PayloadFetcher, maxGames int, logger *slog.Logger) *Provider {
	return &Provider{
		fetcher:  fetcher,
		maxGames: resolveMaxGames(maxGames),
		logger:   logger,
	}
}

// FetchGames downloads, extracts and parses a league's scoreboard. A page with
// no usable payload returns an empty slice and a nil error.
func (p *Provider) FetchGames(ctx context.Context, league string) ([]games.Game, error) {
	if p.fetcher == nil {
		return nil, providers.ErrProviderUnavailable
	}
	body, err := p.fetcher.FetchRawPayload(ctx, league)
	if err != nil {
		return nil, err
	}

	events, err := ExtractEvents(body)
	if err != nil {
		return nil, providers.ParseError(league, err)
	}

	logger := logging.FromContext(ctx, p.logger)
	result := ParseEvents(logger, events)
	if len(result) > p.maxGames {
		result = result[:p.maxGames]
	}
	logging.Info(logger, "parsed espn scoreboard",
		logging.FieldProvider, ProviderName,
		logging.FieldLeague, league,
		"events", len(events),
		logging.FieldCount, len(result),
	)
	return result, nil
}

// Provenance marks ESPN data as live.
func (p *Provider) Provenance() games.Provenance {
	return games.ProvenanceLive
}
