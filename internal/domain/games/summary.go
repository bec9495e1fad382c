package games

import (
	"fmt"
	"strings"
)

// View selects a subset of a scoreboard.
type View string

const (
	ViewAll       View = "all"
	ViewLive      View = "live"
	ViewCompleted View = "completed"
	ViewUpcoming  View = "upcoming"
)

// Views lists the supported views in display order.
var Views = []View{ViewAll, ViewLive, ViewCompleted, ViewUpcoming}

// ParseView maps a query value to a View. Empty means ViewAll.
func ParseView(raw string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" {
		return ViewAll, nil
	}
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", raw)
}

// Filter keeps the games matching view, preserving order.
func Filter(games []Game, view View) []Game {
	if view == ViewAll || view == "" {
		return games
	}
	out := make([]Game, 0, len(games))
	for _, g := range games {
		switch view {
		case ViewLive:
			if g.IsLive() {
				out = append(out, g)
			}
		case ViewCompleted:
			if g.IsCompleted() {
				out = append(out, g)
			}
		case ViewUpcoming:
			if g.IsUpcoming() {
				out = append(out, g)
			}
		}
	}
	return out
}

// Summary counts games by state.
type Summary struct {
	Total     int `json:"total"`
	Live      int `json:"live"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}

// Summarize builds counters for games.
func Summarize(games []Game) Summary {
	s := Summary{Total: len(games)}
	for _, g := range games {
		switch {
		case g.IsCompleted():
			s.Completed++
		case g.IsUpcoming():
			s.Upcoming++
		default:
			s.Live++
		}
	}
	return s
}

// HighScoringLimit caps how many games HighScoring returns.
const HighScoringLimit = 3

// HighScoring returns the first HighScoringLimit games, in board order, where
// both sides have scored and the total beats 1.5x the midpoint of
// [minScore, maxScore].
func HighScoring(games []Game, minScore, maxScore int) []Game {
	threshold := float64(minScore+maxScore) / 2 * 1.5
	out := make([]Game, 0, HighScoringLimit)
	for _, g := range games {
		if len(out) == HighScoringLimit {
			break
		}
		if g.HomeScore > 0 && g.AwayScore > 0 && float64(g.Total()) > threshold {
			out = append(out, g)
		}
	}
	return out
}

// ShowsHighScoring reports whether the dashboard lists high-scoring games for v.
// Only the live and completed views do.
func (v View) ShowsHighScoring() bool {
	return v == ViewLive || v == ViewCompleted
}
