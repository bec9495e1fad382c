package providers

import (
	"context"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// ScoreProvider fetches a league's games from an upstream source.
// An empty result with a nil error means the source had nothing usable.
type ScoreProvider interface {
	FetchGames(ctx context.Context, league string) ([]games.Game, error)
}

// PayloadFetcher retrieves the raw scoreboard payload for a league.
type PayloadFetcher interface {
	FetchRawPayload(ctx context.Context, league string) ([]byte, error)
}

type provenanceReporter interface {
	Provenance() games.Provenance
}

// ProvenanceOf reports the provenance a provider's data carries. Providers
// that do not say otherwise are treated as live.
func ProvenanceOf(p ScoreProvider) games.Provenance {
	if pr, ok := p.(provenanceReporter); ok {
		return pr.Provenance()
	}
	return games.ProvenanceLive
}
