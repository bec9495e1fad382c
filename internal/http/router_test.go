package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-scores-service/internal/live"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/testutil"
)

func newTestRouter(origins ...string) (http.Handler, *metrics.Recorder) {
	provider := testutil.GoodProvider{Games: []games.Game{testutil.SampleGame("Celtics", "Knicks")}}
	h := handlers.NewHandler(handlers.Config{
		Service:       testutil.NewScoreService(provider),
		Hub:           live.NewHub(nil),
		DefaultLeague: "nba",
		AutoRefresh:   true,
	})
	rec := metrics.NewRecorder()
	return NewRouter(h, RouterConfig{Metrics: rec, AllowedOrigins: origins}), rec
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router, _ := newTestRouter()

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/leagues", http.StatusOK},
		{http.MethodGet, "/scores/nba", http.StatusOK},
		{http.MethodGet, "/scores/nba?view=completed", http.StatusOK},
		{http.MethodGet, "/scores/nba/summary", http.StatusOK},
		{http.MethodPost, "/scores/nba/refresh", http.StatusOK},
		{http.MethodGet, "/scores/cricket", http.StatusBadRequest},
		{http.MethodGet, "/", http.StatusFound},
		{http.MethodGet, "/dashboard/nba", http.StatusOK},
		{http.MethodPost, "/dashboard/nba/refresh", http.StatusSeeOther},
		{http.MethodGet, "/ws/scores/nba", http.StatusBadRequest},
	}

	for _, tc := range cases {
		rr := testutil.Serve(router, tc.method, tc.path, nil)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router, _ := newTestRouter()
	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected json error body")
	}
}

func TestRouterWrongMethodReturns405(t *testing.T) {
	router, _ := newTestRouter()
	rr := testutil.Serve(router, http.MethodDelete, "/health", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router, _ := newTestRouter()
	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRouterCORS(t *testing.T) {
	router, _ := newTestRouter("https://scores.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/scores/nba", nil)
	req.Header.Set("Origin", "https://scores.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://scores.example.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected disallowed origin rejected, got %q", got)
	}
}
