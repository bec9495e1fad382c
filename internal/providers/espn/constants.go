package espn

import "time"

const (
	// ProviderName labels ESPN in logs and metrics.
	ProviderName = "espn"

	defaultBaseURL     = "https://www.espn.com"
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxGames    = 15
	maxBodyBytes       = 8 << 20

	// DefaultUserAgent mimics a desktop browser; the scoreboard page rejects bare clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// payloadMarkers are the script variables known to carry scoreboard JSON, tried in order.
var payloadMarkers = []string{
	"window['__espnfitt__']",
	"window.__espnfitt__",
	"window.espn.scoreboardData",
	"__INITIAL_STATE__",
}
