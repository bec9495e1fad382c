package leagues

import "strings"

// DefaultKey is the league used when a key is not recognized.
const DefaultKey = "mlb"

// ScoreRange bounds the per-team score for a league.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// League describes a supported league and its static tables.
type League struct {
	Key            string     `json:"key"`
	Name           string     `json:"name"`
	Sport          string     `json:"sport"`
	ScoreboardPath string     `json:"-"`
	Roster         []string   `json:"-"`
	Scores         ScoreRange `json:"-"`
	Statuses       []string   `json:"-"`
	Clocks         []string   `json:"-"`
}

var basketballClocks = []string{"11:42", "7:15", "5:32", "2:08", "0:47"}

var soccerStatuses = []string{"FT", "1st Half", "HT", "2nd Half", "Scheduled"}

var soccerClocks = []string{"12'", "38'", "45'+2", "67'", "88'"}

var registry = []League{
	{
		Key:            "mlb",
		Name:           "MLB",
		Sport:          "baseball",
		ScoreboardPath: "mlb/scoreboard",
		Roster: []string{
			"Yankees", "Dodgers", "Red Sox", "Astros", "Braves", "Cardinals",
			"Giants", "Cubs", "Mets", "Phillies", "Padres", "Blue Jays",
		},
		Scores:   ScoreRange{Min: 2, Max: 12},
		Statuses: []string{"Final", "Top 3rd", "Bot 5th", "Top 7th", "Bot 9th", "Delayed", "Scheduled"},
	},
	{
		Key:            "nba",
		Name:           "NBA",
		Sport:          "basketball",
		ScoreboardPath: "nba/scoreboard",
		Roster: []string{
			"Lakers", "Warriors", "Celtics", "Heat", "Nets", "Bucks",
			"Clippers", "Suns", "76ers", "Nuggets", "Mavericks", "Bulls",
		},
		Scores:   ScoreRange{Min: 95, Max: 130},
		Statuses: []string{"Final", "1st Quarter", "2nd Quarter", "Halftime", "3rd Quarter", "4th Quarter", "Scheduled"},
		Clocks:   basketballClocks,
	},
	{
		Key:            "nfl",
		Name:           "NFL",
		Sport:          "football",
		ScoreboardPath: "nfl/scoreboard",
		Roster: []string{
			"Chiefs", "Bills", "Cowboys", "Patriots", "Packers", "49ers",
			"Steelers", "Ravens", "Seahawks", "Saints", "Rams", "Broncos",
		},
		Scores:   ScoreRange{Min: 14, Max: 35},
		Statuses: []string{"Final", "Final/OT", "1st Quarter", "2nd Quarter", "Halftime", "3rd Quarter", "4th Quarter", "Scheduled"},
		Clocks:   []string{"14:10", "9:27", "4:51", "2:00", "0:31"},
	},
	{
		Key:            "nhl",
		Name:           "NHL",
		Sport:          "hockey",
		ScoreboardPath: "nhl/scoreboard",
		Roster: []string{
			"Rangers", "Bruins", "Lightning", "Avalanche", "Oilers", "Panthers",
			"Maple Leafs", "Penguins", "Kings", "Capitals", "Stars", "Devils",
		},
		Scores:   ScoreRange{Min: 1, Max: 6},
		Statuses: []string{"Final", "Final/OT", "Final/SO", "1st Period", "2nd Period", "3rd Period", "OT", "Scheduled"},
		Clocks:   []string{"18:44", "14:22", "8:03", "3:09", "0:12"},
	},
	{
		Key:            "ncaab",
		Name:           "NCAA Men's Basketball",
		Sport:          "basketball",
		ScoreboardPath: "mens-college-basketball/scoreboard",
		Roster: []string{
			"Duke", "North Carolina", "Kansas", "Kentucky", "Gonzaga", "UCLA",
			"Villanova", "Michigan State", "Arizona", "Houston", "Purdue", "UConn",
		},
		Scores:   ScoreRange{Min: 65, Max: 95},
		Statuses: []string{"Final", "1st Half", "Halftime", "2nd Half", "Scheduled"},
		Clocks:   basketballClocks,
	},
	{
		Key:            "epl",
		Name:           "Premier League",
		Sport:          "soccer",
		ScoreboardPath: "soccer/scoreboard/_/league/eng.1",
		Roster: []string{
			"Manchester City", "Arsenal", "Liverpool", "Chelsea", "Manchester United", "Tottenham",
			"Newcastle", "Brighton", "Aston Villa", "West Ham", "Crystal Palace", "Fulham",
		},
		Scores:   ScoreRange{Min: 0, Max: 4},
		Statuses: soccerStatuses,
		Clocks:   soccerClocks,
	},
	{
		Key:            "laliga",
		Name:           "La Liga",
		Sport:          "soccer",
		ScoreboardPath: "soccer/scoreboard/_/league/esp.1",
		Roster: []string{
			"Real Madrid", "Barcelona", "Atletico Madrid", "Real Sociedad", "Sevilla", "Villarreal",
			"Real Betis", "Valencia", "Athletic Bilbao", "Osasuna", "Girona", "Las Palmas",
		},
		Scores:   ScoreRange{Min: 0, Max: 4},
		Statuses: soccerStatuses,
		Clocks:   soccerClocks,
	},
}

// Normalize trims and lowercases a league key.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Lookup returns the league registered under key.
func Lookup(key string) (League, bool) {
	key = Normalize(key)
	for _, l := range registry {
		if l.Key == key {
			return l, true
		}
	}
	return League{}, false
}

// Resolve returns the league for key, falling back to DefaultKey when unknown.
func Resolve(key string) League {
	if l, ok := Lookup(key); ok {
		return l
	}
	l, _ := Lookup(DefaultKey)
	return l
}

// All returns every registered league in display order.
func All() []League {
	out := make([]League, len(registry))
	copy(out, registry)
	return out
}

// Keys returns the registered league keys in display order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for _, l := range registry {
		keys = append(keys, l.Key)
	}
	return keys
}
