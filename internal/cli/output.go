package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

type boardOutput struct {
	games.Scoreboard
	Summary games.Summary `json:"summary"`
}

// WriteBoard writes one scoreboard in the specified format.
func WriteBoard(w io.Writer, board games.Scoreboard, format OutputFormat, loc *time.Location) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, boardOutput{Scoreboard: board, Summary: games.Summarize(board.Games)})
	case FormatText:
		return writeBoardText(w, board, loc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteLeagues writes the supported leagues in the specified format.
func WriteLeagues(w io.Writer, all []leagues.League, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, map[string]any{"leagues": all})
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, l := range all {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Key, l.Name, l.Sport)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeBoardText(w io.Writer, board games.Scoreboard, loc *time.Location) error {
	league := leagues.Resolve(board.League)
	fmt.Fprintf(w, "%s scores (%s", league.Name, board.Provenance)
	if clock := timeutil.FormatClock(board.FetchedAt, loc); clock != "" {
		fmt.Fprintf(w, ", updated %s", clock)
	}
	fmt.Fprintln(w, ")")
	if board.IsSample() && board.FallbackReason != "" {
		fmt.Fprintf(w, "Sample data: %s\n", board.FallbackReason)
	}

	if len(board.Games) == 0 {
		fmt.Fprintf(w, "No games available for %s.\n", league.Name)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, g := range board.Games {
		fmt.Fprintf(tw, "%s %d\t@ %s %d\t%s\n", g.AwayTeam, g.AwayScore, g.HomeTeam, g.HomeScore, statusLine(g))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := games.Summarize(board.Games)
	_, err := fmt.Fprintf(w, "Total %d | Live %d | Completed %d | Upcoming %d\n", s.Total, s.Live, s.Completed, s.Upcoming)
	return err
}

func statusLine(g games.Game) string {
	if g.IsLive() && g.Clock != "" {
		return g.Status + " " + g.Clock
	}
	return g.Status
}
