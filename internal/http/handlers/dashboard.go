package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

var viewLabels = map[games.View]string{
	games.ViewAll:       "All Games",
	games.ViewLive:      "Live Games",
	games.ViewCompleted: "Completed Games",
	games.ViewUpcoming:  "Upcoming Games",
}

type navLink struct {
	Label  string
	URL    string
	Active bool
}

type gameCard struct {
	games.Game
	State string
	Badge string
}

type dashboardPage struct {
	League          leagues.League
	LeagueLinks     []navLink
	ViewLinks       []navLink
	View            games.View
	ViewLabel       string
	EmptyLabel      string
	Summary         games.Summary
	HighScoring     []games.Game
	Cards           []gameCard
	Sample          bool
	FallbackReason  string
	LastUpdated     string
	Auto            bool
	AutoValue       string
	IntervalSeconds int
	RefreshURL      string
	ToggleURL       string
}

// dashboardState is the per-request view selection carried in the query string.
type dashboardState struct {
	view     games.View
	auto     bool
	interval time.Duration
}

func (s dashboardState) url(league string, view games.View, auto bool) string {
	q := url.Values{}
	if view != games.ViewAll {
		q.Set("view", string(view))
	}
	q.Set("auto", boolParam(auto))
	q.Set("interval", strconv.Itoa(int(s.interval/time.Second)))
	return "/dashboard/" + url.PathEscape(league) + "?" + q.Encode()
}

// Index redirects to the default league's dashboard.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard/"+h.defaultLeague, http.StatusFound)
}

// Dashboard renders the league's scoreboard as an HTML page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueParam(w, r)
	if !ok {
		return
	}
	state, err := h.dashboardState(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	board := h.svc.Scores(r.Context(), league.Key)
	page := h.buildPage(league, state, board)
	logging.Info(loggerFromContext(r, h.logger), "rendered dashboard",
		logging.FieldLeague, league.Key,
		logging.FieldProvenance, string(board.Provenance),
		logging.FieldCount, len(page.Cards),
	)
	writeHTML(w, r, dashboardTemplate, page, h.logger)
}

// DashboardRefresh refetches the league and sends the browser back to its dashboard.
func (h *Handler) DashboardRefresh(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form", h.logger)
		return
	}
	state, err := h.dashboardState(r.PostForm)
	if err != nil {
		state = dashboardState{view: games.ViewAll, auto: h.autoRefresh, interval: h.refreshInterval}
	}
	h.refresh(r, league.Key)
	http.Redirect(w, r, state.url(league.Key, state.view, state.auto), http.StatusSeeOther)
}

func (h *Handler) dashboardState(values url.Values) (dashboardState, error) {
	view, err := games.ParseView(values.Get("view"))
	if err != nil {
		return dashboardState{}, err
	}
	return dashboardState{
		view:     view,
		auto:     parseBool(values.Get("auto"), h.autoRefresh),
		interval: timeutil.ParseRefreshSeconds(values.Get("interval"), h.refreshInterval),
	}, nil
}

func (h *Handler) buildPage(league leagues.League, state dashboardState, board games.Scoreboard) dashboardPage {
	filtered := games.Filter(board.Games, state.view)
	cards := make([]gameCard, 0, len(filtered))
	for _, g := range filtered {
		cards = append(cards, newGameCard(g))
	}

	page := dashboardPage{
		League:          league,
		View:            state.view,
		ViewLabel:       viewLabels[state.view],
		EmptyLabel:      strings.ToLower(viewLabels[state.view]),
		Summary:         games.Summarize(filtered),
		Cards:           cards,
		Sample:          board.IsSample(),
		FallbackReason:  board.FallbackReason,
		LastUpdated:     timeutil.FormatClock(board.FetchedAt, h.location),
		Auto:            state.auto,
		AutoValue:       boolParam(state.auto),
		IntervalSeconds: int(state.interval / time.Second),
		RefreshURL:      "/dashboard/" + url.PathEscape(league.Key) + "/refresh",
		ToggleURL:       state.url(league.Key, state.view, !state.auto),
	}
	if state.view.ShowsHighScoring() {
		page.HighScoring = games.HighScoring(filtered, league.Scores.Min, league.Scores.Max)
	}
	for _, l := range leagues.All() {
		page.LeagueLinks = append(page.LeagueLinks, navLink{
			Label:  l.Name,
			URL:    state.url(l.Key, state.view, state.auto),
			Active: l.Key == league.Key,
		})
	}
	for _, v := range games.Views {
		page.ViewLinks = append(page.ViewLinks, navLink{
			Label:  viewLabels[v],
			URL:    state.url(league.Key, v, state.auto),
			Active: v == state.view,
		})
	}
	return page
}

func newGameCard(g games.Game) gameCard {
	switch {
	case g.IsCompleted():
		return gameCard{Game: g, State: "final", Badge: "Final"}
	case g.IsLive():
		return gameCard{Game: g, State: "live", Badge: "Live"}
	default:
		return gameCard{Game: g, State: "upcoming", Badge: "Upcoming"}
	}
}

func parseBool(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no":
		return false
	default:
		return fallback
	}
}

func boolParam(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
