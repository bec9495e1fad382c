package store

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// MemoryStore keeps the latest scoreboard per league in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]games.Scoreboard
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[string]games.Scoreboard),
	}
}

// Get returns a copy of the cached board for league.
func (s *MemoryStore) Get(ctx context.Context, league string) (games.Scoreboard, bool) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[league]
	if !ok {
		return games.Scoreboard{}, false
	}
	return cloneBoard(board), true
}

// Set replaces the cached board for league wholesale.
func (s *MemoryStore) Set(ctx context.Context, league string, board games.Scoreboard) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards[league] = cloneBoard(board)
}

// Invalidate zeroes the fetch timestamp so the next read is treated as stale.
func (s *MemoryStore) Invalidate(ctx context.Context, league string) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if board, ok := s.boards[league]; ok {
		board.FetchedAt = time.Time{}
		s.boards[league] = board
	}
}

func cloneBoard(board games.Scoreboard) games.Scoreboard {
	if board.Games != nil {
		board.Games = append([]games.Game(nil), board.Games...)
	}
	return board
}
