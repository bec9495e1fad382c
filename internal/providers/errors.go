package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when a wrapper has no provider to call.
var ErrProviderUnavailable = errors.New("provider unavailable")

// FetchErrorKind classifies a fetch failure.
type FetchErrorKind string

const (
	KindNetwork FetchErrorKind = "network"
	KindParse   FetchErrorKind = "parse"
)

// FetchError describes a failed attempt to obtain a league's scoreboard.
type FetchError struct {
	Kind       FetchErrorKind
	League     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s error fetching %s scoreboard", e.Kind, e.League)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NetworkError builds a FetchError for transport and status failures.
func NetworkError(league string, status int, err error) *FetchError {
	return &FetchError{Kind: KindNetwork, League: league, StatusCode: status, Err: err}
}

// ParseError builds a FetchError for unreadable payloads.
func ParseError(league string, err error) *FetchError {
	return &FetchError{Kind: KindParse, League: league, Err: err}
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
