package games

import (
	"reflect"
	"testing"
)

func TestProvenanceValues(t *testing.T) {
	if ProvenanceLive != "live" || ProvenanceSample != "sample" {
		t.Fatalf("unexpected provenance values %q %q", ProvenanceLive, ProvenanceSample)
	}
}

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"HomeTeam", "homeTeam"},
		{"AwayTeam", "awayTeam"},
		{"HomeScore", "homeScore"},
		{"AwayScore", "awayScore"},
		{"HomeRecord", "homeRecord"},
		{"AwayRecord", "awayRecord"},
		{"Status", "status"},
		{"Clock", "clock"},
		{"Completed", "completed"},
	}

	for _, fc := range fields {
		field, ok := gameType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != fc.tag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.tag, jsonTag)
		}
	}
}

func TestGameStateHelpers(t *testing.T) {
	cases := []struct {
		name     string
		game     Game
		live     bool
		upcoming bool
	}{
		{"final", Game{Status: "Final", Completed: true}, false, false},
		{"live text but completed", Game{Status: "Live", Completed: true}, false, false},
		{"in progress", Game{Status: "Top 7th"}, true, false},
		{"scheduled", Game{Status: "Scheduled"}, false, true},
		{"unknown", Game{Status: "Unknown"}, false, true},
		{"empty status", Game{}, false, true},
		{"start time", Game{Status: "7:05 PM"}, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.game.IsLive(); got != tc.live {
				t.Fatalf("expected live=%v, got %v", tc.live, got)
			}
			if got := tc.game.IsUpcoming(); got != tc.upcoming {
				t.Fatalf("expected upcoming=%v, got %v", tc.upcoming, got)
			}
		})
	}
}

func TestScoreboardWithGamesCopies(t *testing.T) {
	board := Scoreboard{League: "mlb", Games: []Game{{HomeTeam: "A"}}, Provenance: ProvenanceSample}
	filtered := board.WithGames(nil)
	if len(board.Games) != 1 {
		t.Fatalf("expected original games untouched")
	}
	if filtered.Games != nil || filtered.League != "mlb" || !filtered.IsSample() {
		t.Fatalf("unexpected copy %+v", filtered)
	}
}
