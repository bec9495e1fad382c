package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// Auto-refresh bounds shared by the poller config and the dashboard.
const (
	MinRefreshInterval     = 5 * time.Second
	MaxRefreshInterval     = 30 * time.Second
	DefaultRefreshInterval = 10 * time.Second
)

// ClockLayout is the "Last updated" display format.
const ClockLayout = "3:04:05 PM MST"

// ClampRefreshInterval bounds d to [MinRefreshInterval, MaxRefreshInterval].
// Non-positive values yield DefaultRefreshInterval.
func ClampRefreshInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultRefreshInterval
	case d < MinRefreshInterval:
		return MinRefreshInterval
	case d > MaxRefreshInterval:
		return MaxRefreshInterval
	default:
		return d
	}
}

// ParseRefreshSeconds reads a whole-second interval such as "15" and clamps it.
// Blank or malformed input returns fallback, clamped.
func ParseRefreshSeconds(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ClampRefreshInterval(fallback)
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return ClampRefreshInterval(fallback)
	}
	// Bound secs before converting so huge values cannot overflow.
	if limit := int(MaxRefreshInterval / time.Second); secs > limit {
		secs = limit
	}
	return ClampRefreshInterval(time.Duration(secs) * time.Second)
}

// FormatClock renders t in loc using ClockLayout. A nil loc uses t's own location.
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(ClockLayout)
}
