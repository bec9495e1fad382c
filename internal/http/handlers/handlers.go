package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/live"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/poller"
	"github.com/preston-bernstein/sports-scores-service/internal/scoreboard"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// Config wires a Handler.
type Config struct {
	Service  *scoreboard.Service
	Hub      *live.Hub
	Logger   *slog.Logger
	StatusFn func() poller.Status

	DefaultLeague   string
	AutoRefresh     bool
	RefreshInterval time.Duration
	// Location renders "Last updated" times; nil keeps UTC.
	Location *time.Location
}

// Handler wires HTTP routes to the scoreboard service.
type Handler struct {
	svc      *scoreboard.Service
	hub      *live.Hub
	logger   *slog.Logger
	statusFn func() poller.Status

	defaultLeague   string
	autoRefresh     bool
	refreshInterval time.Duration
	location        *time.Location
}

// NewHandler constructs a Handler with defaults.
func NewHandler(cfg Config) *Handler {
	def := cfg.DefaultLeague
	if _, ok := leagues.Lookup(def); !ok {
		def = leagues.DefaultKey
	}
	return &Handler{
		svc:             cfg.Service,
		hub:             cfg.Hub,
		logger:          cfg.Logger,
		statusFn:        cfg.StatusFn,
		defaultLeague:   leagues.Normalize(def),
		autoRefresh:     cfg.AutoRefresh,
		refreshInterval: timeutil.ClampRefreshInterval(cfg.RefreshInterval),
		location:        cfg.Location,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Leagues lists the supported leagues.
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"leagues": leagues.All()}, h.logger)
}

// Scores returns the league's scoreboard, optionally filtered by ?view=.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueParam(w, r)
	if !ok {
		return
	}
	view, err := games.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	board := h.svc.Scores(r.Context(), league.Key)
	logging.Info(loggerFromContext(r, h.logger), "served scoreboard",
		logging.FieldLeague, league.Key,
		logging.FieldProvenance, string(board.Provenance),
		logging.FieldCount, len(board.Games),
		"cached", board.Cached,
	)
	writeJSON(w, http.StatusOK, board.WithGames(games.Filter(board.Games, view)), h.logger)
}

// Summary returns counters and high-scoring games for the league.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Summary(r.Context(), league.Key), h.logger)
}

// Refresh forces a refetch of the league and pushes the result to subscribers.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueParam(w, r)
	if !ok {
		return
	}
	board := h.refresh(r, league.Key)
	writeJSON(w, http.StatusOK, board, h.logger)
}

// NotFound answers unknown routes with the JSON error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) refresh(r *http.Request, league string) games.Scoreboard {
	board := h.svc.Refresh(r.Context(), league)
	if h.hub != nil {
		h.hub.Publish(board)
	}
	logging.Info(loggerFromContext(r, h.logger), "manual refresh",
		logging.FieldLeague, league,
		logging.FieldProvenance, string(board.Provenance),
	)
	return board
}

// leagueParam resolves {league}, answering 400 for unknown keys.
func (h *Handler) leagueParam(w http.ResponseWriter, r *http.Request) (leagues.League, bool) {
	raw := chi.URLParam(r, "league")
	league, ok := leagues.Lookup(raw)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown league: "+raw, h.logger)
		return leagues.League{}, false
	}
	return league, true
}
