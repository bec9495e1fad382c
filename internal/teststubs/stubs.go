package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// StubProvider is a test double for providers.ScoreProvider.
type StubProvider struct {
	Games  []games.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	mu      sync.Mutex
	leagues []string
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, league string) ([]games.Game, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Lock()
	s.leagues = append(s.leagues, league)
	s.mu.Unlock()
	s.Calls.Add(1)
	return s.Games, s.Err
}

// Leagues returns the leagues requested so far, in call order.
func (s *StubProvider) Leagues() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.leagues))
	copy(out, s.leagues)
	return out
}

// StubFetcher is a test double for providers.PayloadFetcher.
type StubFetcher struct {
	Body  []byte
	Err   error
	Calls atomic.Int32
}

// FetchRawPayload returns the configured body and error.
func (s *StubFetcher) FetchRawPayload(ctx context.Context, league string) ([]byte, error) {
	_ = ctx
	_ = league
	s.Calls.Add(1)
	return s.Body, s.Err
}

// StubPublisher records published scoreboards.
type StubPublisher struct {
	mu        sync.Mutex
	Published []games.Scoreboard
}

// Publish stores the board for later inspection.
func (p *StubPublisher) Publish(board games.Scoreboard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, board)
}

// Boards returns a copy of the published scoreboards.
func (p *StubPublisher) Boards() []games.Scoreboard {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]games.Scoreboard, len(p.Published))
	copy(out, p.Published)
	return out
}
