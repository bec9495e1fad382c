package scoreboard

import (
	"context"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
)

// Report is the summary view of a league's scoreboard.
type Report struct {
	League      string           `json:"league"`
	Provenance  games.Provenance `json:"provenance"`
	FetchedAt   time.Time        `json:"fetchedAt"`
	Summary     games.Summary    `json:"summary"`
	HighScoring []games.Game     `json:"highScoring"`
}

// BuildReport summarizes board using the league's score range.
func BuildReport(board games.Scoreboard) Report {
	l := leagues.Resolve(board.League)
	return Report{
		League:      board.League,
		Provenance:  board.Provenance,
		FetchedAt:   board.FetchedAt,
		Summary:     games.Summarize(board.Games),
		HighScoring: games.HighScoring(board.Games, l.Scores.Min, l.Scores.Max),
	}
}

// Summary reads the league's scoreboard and summarizes it.
func (s *Service) Summary(ctx context.Context, league string) Report {
	return BuildReport(s.Scores(ctx, league))
}
