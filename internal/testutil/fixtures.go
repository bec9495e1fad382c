package testutil

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// SampleGame returns a finished game between the provided teams.
func SampleGame(home, away string) games.Game {
	return games.Game{
		HomeTeam:   home,
		AwayTeam:   away,
		HomeScore:  5,
		AwayScore:  3,
		HomeRecord: "10-4",
		AwayRecord: "7-7",
		Status:     "Final",
		Completed:  true,
	}
}

// SampleBoard builds a scoreboard fetched at a fixed instant.
func SampleBoard(league string, provenance games.Provenance, g ...games.Game) games.Scoreboard {
	return games.Scoreboard{
		League:     league,
		Games:      g,
		Provenance: provenance,
		FetchedAt:  time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
	}
}
