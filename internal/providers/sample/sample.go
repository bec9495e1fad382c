package sample

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
)

const (
	// ProviderName labels sample data in logs and metrics.
	ProviderName = "sample"

	completedWeight = 0.7
	clockWeight     = 0.2
)

// Generator fabricates plausible games for a league. Output is random on every call.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand sets the random source, e.g. a seeded one in tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// New creates a generator seeded from the clock.
func New(opts ...Option) *Generator {
	g := &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Games pairs consecutive roster entries into matchups. Unknown leagues use
// the baseball tables.
func (g *Generator) Games(league string) []games.Game {
	l := leagues.Resolve(league)

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]games.Game, 0, len(l.Roster)/2)
	for i := 0; i+1 < len(l.Roster); i += 2 {
		game := games.Game{
			HomeTeam:  l.Roster[i],
			AwayTeam:  l.Roster[i+1],
			HomeScore: g.score(l.Scores),
			AwayScore: g.score(l.Scores),
			Status:    l.Statuses[g.rng.Intn(len(l.Statuses))],
			Completed: g.rng.Float64() < completedWeight,
		}
		if len(l.Clocks) > 0 && g.rng.Float64() < clockWeight {
			game.Clock = l.Clocks[g.rng.Intn(len(l.Clocks))]
		}
		out = append(out, game)
	}
	return out
}

// FetchGames satisfies providers.ScoreProvider and never fails.
func (g *Generator) FetchGames(ctx context.Context, league string) ([]games.Game, error) {
	_ = ctx
	return g.Games(league), nil
}

// Provenance marks generated data as sample.
func (g *Generator) Provenance() games.Provenance {
	return games.ProvenanceSample
}

func (g *Generator) score(r leagues.ScoreRange) int {
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}
