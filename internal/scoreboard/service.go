package scoreboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

// DefaultTTL is how long a cached scoreboard is served without refetching.
const DefaultTTL = 3 * time.Minute

// DefaultFetchTimeout bounds one upstream fetch, retries included.
const DefaultFetchTimeout = 20 * time.Second

const (
	reasonError = "error"
	reasonEmpty = "empty"
)

// Store holds the latest scoreboard per league.
type Store interface {
	Get(ctx context.Context, league string) (games.Scoreboard, bool)
	Set(ctx context.Context, league string, board games.Scoreboard)
	Invalidate(ctx context.Context, league string)
}

// Config wires a Service.
type Config struct {
	Primary  providers.ScoreProvider
	Fallback providers.ScoreProvider
	Store    Store
	TTL      time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder

	// FetchTimeout bounds a cache-miss fetch. Zero uses DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// Service serves cached scoreboards, refetching after the TTL and substituting
// fallback data when the primary provider fails or returns nothing.
type Service struct {
	primary  providers.ScoreProvider
	fallback providers.ScoreProvider
	store    Store
	ttl      time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
	group    singleflight.Group
}

// NewService constructs a Service. A zero TTL uses DefaultTTL.
func NewService(cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Service{
		primary:  cfg.Primary,
		fallback: cfg.Fallback,
		store:    cfg.Store,
		ttl:      ttl,
		timeout:  timeout,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		now:      time.Now,
	}
}

// TTL reports the cache freshness window.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Scores returns the league's scoreboard from cache when fresh, otherwise fetches it.
func (s *Service) Scores(ctx context.Context, league string) games.Scoreboard {
	league = leagues.Normalize(league)
	if board, ok := s.fresh(ctx, league); ok {
		s.metrics.RecordCacheLookup(league, true)
		return board
	}
	s.metrics.RecordCacheLookup(league, false)

	// The fetch outlives any single caller so a dropped request cannot cache
	// fallback data, but it never runs past s.timeout.
	v, _, _ := s.group.Do(league, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		if board, ok := s.fresh(fetchCtx, league); ok {
			return board, nil
		}
		return s.fetch(fetchCtx, league), nil
	})
	return v.(games.Scoreboard)
}

// Invalidate marks the league's cached board stale.
func (s *Service) Invalidate(ctx context.Context, league string) {
	s.store.Invalidate(ctx, leagues.Normalize(league))
}

// Refresh invalidates the league and fetches it again.
func (s *Service) Refresh(ctx context.Context, league string) games.Scoreboard {
	s.Invalidate(ctx, league)
	return s.Scores(ctx, league)
}

func (s *Service) fresh(ctx context.Context, league string) (games.Scoreboard, bool) {
	board, ok := s.store.Get(ctx, league)
	if !ok || board.FetchedAt.IsZero() {
		return games.Scoreboard{}, false
	}
	if s.now().Sub(board.FetchedAt) >= s.ttl {
		return games.Scoreboard{}, false
	}
	board.Cached = true
	return board, true
}

func (s *Service) fetch(ctx context.Context, league string) games.Scoreboard {
	logger := logging.FromContext(ctx, s.logger)
	board := games.Scoreboard{League: league}

	var result []games.Game
	var err error
	if s.primary != nil {
		result, err = s.primary.FetchGames(ctx, league)
	} else {
		err = providers.ErrProviderUnavailable
	}
	// The fetch deadline may have expired; the fallback and cache write still run.
	ctx = context.WithoutCancel(ctx)

	switch {
	case err == nil && len(result) > 0:
		board.Games = result
		board.Provenance = providers.ProvenanceOf(s.primary)
	default:
		reason := reasonEmpty
		if err != nil {
			reason = reasonError
			logging.Warn(logger, "scoreboard fetch failed, using sample data", logging.FieldLeague, league, "err", err)
		} else {
			logging.Info(logger, "scoreboard fetch returned no games, using sample data", logging.FieldLeague, league)
		}
		board.Games = s.fallbackGames(ctx, league)
		board.Provenance = games.ProvenanceSample
		board.FallbackReason = fallbackReason(err)
		s.metrics.RecordFallback(league, reason)
	}

	board.FetchedAt = s.now()
	s.store.Set(ctx, league, board)
	logging.Info(logger, "scoreboard refreshed",
		logging.FieldLeague, league,
		logging.FieldProvenance, string(board.Provenance),
		logging.FieldCount, len(board.Games),
	)
	return board
}

func (s *Service) fallbackGames(ctx context.Context, league string) []games.Game {
	if s.fallback == nil {
		return []games.Game{}
	}
	result, err := s.fallback.FetchGames(ctx, league)
	if err != nil {
		logging.Error(logging.FromContext(ctx, s.logger), "sample data unavailable", err, logging.FieldLeague, league)
		return []games.Game{}
	}
	return result
}

func fallbackReason(err error) string {
	if err == nil {
		return "no games found upstream"
	}
	return err.Error()
}
