package games

import (
	"strings"
	"time"
)

// DefaultTeamName is used when upstream data omits a display name.
const DefaultTeamName = "TBD"

// DefaultStatus is used when upstream data omits a status description.
const DefaultStatus = "Unknown"

// Provenance tags where a scoreboard came from.
type Provenance string

const (
	ProvenanceLive   Provenance = "live"
	ProvenanceSample Provenance = "sample"
)

// Game is the flat game record exposed by the service.
type Game struct {
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	HomeRecord string `json:"homeRecord"`
	AwayRecord string `json:"awayRecord"`
	Status     string `json:"status"`
	Clock      string `json:"clock"`
	Completed  bool   `json:"completed"`
}

var upcomingStatuses = map[string]struct{}{
	"":          {},
	"scheduled": {},
	"unknown":   {},
	"pre":       {},
	"postponed": {},
	"delayed":   {},
}

// IsCompleted reports whether the match has ended. Completed wins over status text.
func (g Game) IsCompleted() bool {
	return g.Completed
}

// IsUpcoming reports whether the match has not started yet.
func (g Game) IsUpcoming() bool {
	if g.Completed {
		return false
	}
	status := strings.ToLower(strings.TrimSpace(g.Status))
	if _, ok := upcomingStatuses[status]; ok {
		return true
	}
	// Start times such as "7:05 PM" or "1:00 PM ET".
	for _, suffix := range []string{" am", " pm", " et"} {
		if strings.HasSuffix(status, suffix) {
			return true
		}
	}
	return false
}

// IsLive reports whether the match is in progress.
func (g Game) IsLive() bool {
	return !g.Completed && !g.IsUpcoming()
}

// Total returns the combined score.
func (g Game) Total() int {
	return g.HomeScore + g.AwayScore
}

// Scoreboard is the orchestrator's result: a league's games tagged with provenance.
type Scoreboard struct {
	League         string     `json:"league"`
	Games          []Game     `json:"games"`
	Provenance     Provenance `json:"provenance"`
	FetchedAt      time.Time  `json:"fetchedAt"`
	Cached         bool       `json:"cached"`
	FallbackReason string     `json:"fallbackReason,omitempty"`
}

// IsSample reports whether the board holds fabricated data.
func (s Scoreboard) IsSample() bool {
	return s.Provenance == ProvenanceSample
}

// WithGames returns a copy of the board carrying the given games.
func (s Scoreboard) WithGames(games []Game) Scoreboard {
	s.Games = games
	return s
}
