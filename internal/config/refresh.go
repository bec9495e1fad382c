package config

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// AutoRefreshConfig controls the background poller and the dashboard's default cadence.
type AutoRefreshConfig struct {
	Enabled  bool
	Interval time.Duration
	Leagues  []string
}

func loadAutoRefresh(defaultLeague string) AutoRefreshConfig {
	return AutoRefreshConfig{
		Enabled:  boolEnvOrDefault(envAutoRefreshEnabled, defaultAutoRefresh),
		Interval: timeutil.ClampRefreshInterval(durationEnvOrDefault(envAutoRefreshEvery, defaultRefreshEvery)),
		Leagues:  knownLeagues(listEnvOrDefault(envAutoRefreshLeagues, defaultLeague), defaultLeague),
	}
}

// knownLeagues keeps registered, de-duplicated keys in order. An empty result
// falls back to fallback.
func knownLeagues(keys []string, fallback string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		l, ok := leagues.Lookup(key)
		if !ok {
			continue
		}
		if _, dup := seen[l.Key]; dup {
			continue
		}
		seen[l.Key] = struct{}{}
		out = append(out, l.Key)
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}
