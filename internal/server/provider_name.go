package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving it from the
// instance type when not explicitly configured. Used as the metrics/log label.
func normalizeProviderName(raw string, provider providers.ScoreProvider) string {
	if raw != "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	if provider != nil {
		name := strings.ToLower(fmt.Sprintf("%T", provider))
		name = strings.TrimPrefix(name, "*")
		if i := strings.Index(name, "."); i >= 0 {
			name = name[:i]
		}
		return name
	}
	return "provider"
}
