package config

import "time"

// ESPNConfig controls how the scoreboard pages are fetched.
type ESPNConfig struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MaxGames    int
	MaxAttempts int
	MinInterval time.Duration
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL:     envOrDefault(envEspnBaseURL, defaultEspnBaseURL),
		UserAgent:   envOrDefault(envEspnUserAgent, ""),
		Timeout:     durationEnvOrDefault(envEspnTimeout, defaultEspnTimeout),
		MaxGames:    intEnvOrDefault(envMaxGames, defaultMaxGames),
		MaxAttempts: intEnvOrDefault(envFetchMaxAttempts, defaultFetchAttempts),
		MinInterval: durationEnvOrDefault(envFetchMinInterval, defaultFetchInterval),
	}
}
