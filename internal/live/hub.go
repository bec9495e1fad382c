package live

import (
	"log/slog"
	"sync"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

// Hub tracks websocket subscribers and fans scoreboards out to those watching
// the board's league.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a client. It returns false once the hub is closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.send)
		return false
	}
	h.clients[c] = struct{}{}
	logging.Info(h.logger, "websocket client connected",
		logging.FieldClientID, c.ID,
		logging.FieldLeague, c.League,
		logging.FieldCount, len(h.clients),
	)
	return true
}

// Unregister removes a client and closes its send channel. Safe to call repeatedly.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	logging.Info(h.logger, "websocket client disconnected",
		logging.FieldClientID, c.ID,
		logging.FieldCount, len(h.clients),
	)
}

// Publish sends the board to every client subscribed to its league. Clients
// whose buffers are full are disconnected.
func (h *Hub) Publish(board games.Scoreboard) {
	league := leagues.Normalize(board.League)

	// Sends happen under the read lock so a concurrent Unregister cannot close
	// a channel mid-send. TrySend never blocks.
	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		if c.League == league && !c.TrySend(board) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range slow {
		logging.Warn(h.logger, "websocket client too slow, disconnecting", logging.FieldClientID, c.ID)
		h.removeLocked(c)
	}
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects later registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
