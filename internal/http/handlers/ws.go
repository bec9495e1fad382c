package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/sports-scores-service/internal/live"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are governed by the CORS allow-list on the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Websocket streams the league's scoreboard: the current board on connect,
// then every board published for that league.
func (h *Handler) Websocket(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueParam(w, r)
	if !ok {
		return
	}
	if h.hub == nil {
		writeError(w, r, http.StatusServiceUnavailable, "live updates disabled", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	board := h.svc.Scores(r.Context(), league.Key)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Warn(logger, "websocket upgrade failed", logging.FieldLeague, league.Key, "err", err)
		return
	}

	client := live.NewClient(uuid.NewString(), league.Key, conn, h.hub, h.logger)
	client.TrySend(board)
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
