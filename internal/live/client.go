package live

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Subscribers only send control frames.
	maxMessageSize = 512

	sendBufferSize = 16
)

// MessageTypeScoreboard tags a pushed scoreboard.
const MessageTypeScoreboard = "scoreboard"

// Message is the envelope written to subscribers.
type Message struct {
	Type      string           `json:"type"`
	Payload   games.Scoreboard `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

// Client is one websocket subscriber to a league's scoreboard.
type Client struct {
	ID     string
	League string

	conn   *websocket.Conn
	send   chan Message
	hub    *Hub
	logger *slog.Logger
}

// NewClient builds a client for the league. conn may be nil in tests that only
// exercise the hub.
func NewClient(id, league string, conn *websocket.Conn, hub *Hub, logger *slog.Logger) *Client {
	return &Client{
		ID:     id,
		League: league,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		hub:    hub,
		logger: logger,
	}
}

// TrySend queues a board without blocking. It reports false when the buffer is full.
func (c *Client) TrySend(board games.Scoreboard) bool {
	msg := Message{Type: MessageTypeScoreboard, Payload: board, Timestamp: time.Now().UTC()}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ReadPump drains inbound frames so pongs are processed, and unregisters the
// client when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logging.Warn(c.logger, "websocket closed unexpectedly", logging.FieldClientID, c.ID, "err", err)
			}
			return
		}
	}
}

// WritePump writes queued boards and keepalive pings until the send channel closes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logging.Warn(c.logger, "websocket write failed", logging.FieldClientID, c.ID, "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
