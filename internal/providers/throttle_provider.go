package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

const defaultMinInterval = 2 * time.Second

// throttledProvider spaces upstream calls for the same league by a minimum interval.
type throttledProvider struct {
	next     ScoreProvider
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	nextSlot map[string]time.Time
	now      func() time.Time
}

// NewThrottledProvider returns a ScoreProvider that waits until at least interval
// has passed since the previous call for the same league.
func NewThrottledProvider(next ScoreProvider, interval time.Duration, logger *slog.Logger) ScoreProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &throttledProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		nextSlot: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (p *throttledProvider) FetchGames(ctx context.Context, league string) ([]games.Game, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "throttled", "provider unavailable")
		return nil, ErrProviderUnavailable
	}

	if wait := p.reserve(league); wait > 0 {
		logWithProvider(ctx, p.logger, slog.LevelDebug, "throttled", "throttling provider fetch", logging.FieldLeague, league, "wait_ms", wait.Milliseconds())
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			logWithProvider(ctx, p.logger, slog.LevelWarn, "throttled", "throttled fetch canceled", logging.FieldLeague, league)
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return p.next.FetchGames(ctx, league)
}

// reserve claims the next free slot for league and returns how long to wait for it.
func (p *throttledProvider) reserve(league string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	slot := p.nextSlot[league]
	if slot.Before(now) {
		slot = now
	}
	p.nextSlot[league] = slot.Add(p.interval)
	return slot.Sub(now)
}
