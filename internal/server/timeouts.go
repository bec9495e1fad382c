package server

import "time"

const (
	readTimeout = 10 * time.Second
	// A cache miss may sit behind throttling and retries before it renders.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
