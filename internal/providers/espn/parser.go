package espn

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// ParseEvents maps ESPN event objects to games. Events that cannot be mapped are
// logged and skipped; the rest of the batch is kept.
func ParseEvents(logger *slog.Logger, events []map[string]any) []games.Game {
	out := make([]games.Game, 0, len(events))
	for i, event := range events {
		game, err := parseEvent(event)
		if err != nil {
			if logger != nil {
				logger.Debug("skipping scoreboard event",
					slog.Int("index", i),
					slog.String("event_id", extractString(event, "id")),
					slog.String("reason", err.Error()),
				)
			}
			continue
		}
		out = append(out, game)
	}
	return out
}

func parseEvent(event map[string]any) (game games.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed event: %v", r)
		}
	}()

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return games.Game{}, fmt.Errorf("no competitions")
	}
	competition, ok := competitions[0].(map[string]any)
	if !ok {
		return games.Game{}, fmt.Errorf("competition is not an object")
	}

	competitors := extractArray(competition, "competitors")
	if len(competitors) < 2 {
		return games.Game{}, fmt.Errorf("expected 2 competitors, got %d", len(competitors))
	}

	var home, away map[string]any
	for _, c := range competitors {
		competitor, ok := c.(map[string]any)
		if !ok {
			continue
		}
		switch strings.ToLower(extractString(competitor, "homeAway")) {
		case "home":
			if home == nil {
				home = competitor
			}
		case "away":
			if away == nil {
				away = competitor
			}
		}
	}
	if home == nil || away == nil {
		return games.Game{}, fmt.Errorf("missing home or away competitor")
	}

	status := extractMap(competition, "status")
	if len(status) == 0 {
		status = extractMap(event, "status")
	}
	statusType := extractMap(status, "type")

	return games.Game{
		HomeTeam:   teamName(home),
		AwayTeam:   teamName(away),
		HomeScore:  parseScore(home["score"]),
		AwayScore:  parseScore(away["score"]),
		HomeRecord: recordSummary(home),
		AwayRecord: recordSummary(away),
		Status:     fallbackString(extractString(statusType, "description"), extractString(statusType, "shortDetail"), games.DefaultStatus),
		Clock:      extractString(status, "displayClock"),
		Completed:  extractBool(statusType, "completed"),
	}, nil
}

func teamName(competitor map[string]any) string {
	team := extractMap(competitor, "team")
	return fallbackString(extractString(team, "displayName"), extractString(team, "name"), games.DefaultTeamName)
}

func recordSummary(competitor map[string]any) string {
	records := extractArray(competitor, "records")
	if len(records) == 0 {
		return ""
	}
	first, ok := records[0].(map[string]any)
	if !ok {
		return ""
	}
	return extractString(first, "summary")
}

// parseScore accepts numbers, numeric strings, and {"value"|"displayValue"} objects.
// Anything else, and negative values, become 0.
func parseScore(v any) int {
	var score int
	switch val := v.(type) {
	case map[string]any:
		if inner, ok := val["value"]; ok {
			return parseScore(inner)
		}
		return parseScore(val["displayValue"])
	default:
		score = parseInt(val)
	}
	if score < 0 {
		return 0
	}
	return score
}

func extractString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func fallbackString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func extractBool(m map[string]any, key string) bool {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			b, _ := strconv.ParseBool(val)
			return b
		}
	}
	return false
}

func extractMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]any); ok {
			return mapVal
		}
	}
	return map[string]any{}
}

func extractArray(m map[string]any, key string) []any {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]any); ok {
			return arrVal
		}
	}
	return []any{}
}

func parseInt(v any) int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return int(val)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(val))
		return i
	case int:
		return val
	default:
		return 0
	}
}
