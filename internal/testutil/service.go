package testutil

import (
	"math/rand"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/sample"
	"github.com/preston-bernstein/sports-scores-service/internal/scoreboard"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
)

// NewScoreService builds a scoreboard service over primary with a seeded sample
// fallback and an in-memory cache.
func NewScoreService(primary providers.ScoreProvider) *scoreboard.Service {
	return scoreboard.NewService(scoreboard.Config{
		Primary:  primary,
		Fallback: sample.New(sample.WithRand(rand.New(rand.NewSource(1)))),
		Store:    store.NewMemoryStore(),
		TTL:      time.Minute,
	})
}
