package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/teststubs"
	"github.com/preston-bernstein/sports-scores-service/internal/testutil"
)

func TestIndexRedirectsToDefaultLeague(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{})
	rr := testutil.Serve(http.HandlerFunc(h.Index), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusFound)
	if got := rr.Header().Get("Location"); got != "/dashboard/nba" {
		t.Fatalf("expected redirect to nba dashboard, got %s", got)
	}
}

func TestDashboardRendersCardsAndCounters(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{Games: liveGames()})

	rr := withLeague(h.Dashboard, http.MethodGet, "/dashboard/mlb", "mlb")
	testutil.AssertStatus(t, rr, http.StatusOK)
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %s", ct)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<h2>MLB - All Games</h2>",
		"Red Sox",
		"@ Yankees",
		`class="card live"`,
		`class="card final"`,
		`class="card upcoming"`,
		`http-equiv="refresh" content="10"`,
		"Auto-updating every 10 seconds",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected dashboard to contain %q", want)
		}
	}
	if strings.Contains(body, "Sample data") {
		t.Fatalf("expected no sample banner for live data")
	}
	if strings.Contains(body, "High-Scoring Games") {
		t.Fatalf("expected no high-scoring list in the all view")
	}
}

func TestDashboardHighScoringInCompletedView(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{Games: liveGames()})

	rr := withLeague(h.Dashboard, http.MethodGet, "/dashboard/mlb?view=completed", "mlb")
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	if !strings.Contains(body, "High-Scoring Games") || !strings.Contains(body, "Total: 17") {
		t.Fatalf("expected high-scoring list in the completed view, got %s", body)
	}
}

func TestDashboardShowsSampleBanner(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{Err: errors.New("timeout")})

	rr := withLeague(h.Dashboard, http.MethodGet, "/dashboard/nfl", "nfl")
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	if !strings.Contains(body, "Sample data") {
		t.Fatalf("expected sample banner")
	}
	if !strings.Contains(body, "timeout") {
		t.Fatalf("expected fallback reason in banner")
	}
}

func TestDashboardViewAndAutoControls(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{Games: liveGames()})

	rr := withLeague(h.Dashboard, http.MethodGet, "/dashboard/mlb?view=live&auto=0&interval=2", "mlb")
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	if strings.Contains(body, "http-equiv") {
		t.Fatalf("expected no meta refresh when auto is off")
	}
	if !strings.Contains(body, "Auto-update disabled") {
		t.Fatalf("expected disabled notice")
	}
	if strings.Contains(body, "Yankees") {
		t.Fatalf("expected completed game filtered out of live view")
	}
	if !strings.Contains(body, `name="interval" value="5"`) {
		t.Fatalf("expected interval clamped to 5 seconds")
	}
}

func TestDashboardEmptyView(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{Games: liveGames()[:1]})

	rr := withLeague(h.Dashboard, http.MethodGet, "/dashboard/mlb?view=upcoming", "mlb")
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "No upcoming games available for MLB") {
		t.Fatalf("expected empty state, got %s", rr.Body.String())
	}
}

func TestDashboardRejectsBadInput(t *testing.T) {
	h, _ := newTestHandler(&teststubs.StubProvider{})
	rr := withLeague(h.Dashboard, http.MethodGet, "/dashboard/xfl", "xfl")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	rr = withLeague(h.Dashboard, http.MethodGet, "/dashboard/mlb?view=weekly", "mlb")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestDashboardRefreshRedirectsWithState(t *testing.T) {
	provider := &teststubs.StubProvider{Games: liveGames()}
	h, _ := newTestHandler(provider)

	form := url.Values{"view": {"completed"}, "auto": {"1"}, "interval": {"20"}}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/mlb/refresh", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := serveRequestWithLeague(h.DashboardRefresh, req, "mlb")

	testutil.AssertStatus(t, rr, http.StatusSeeOther)
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("expected valid location, got %v", err)
	}
	if loc.Path != "/dashboard/mlb" {
		t.Fatalf("expected redirect to dashboard, got %s", loc.Path)
	}
	q := loc.Query()
	if q.Get("view") != "completed" || q.Get("auto") != "1" || q.Get("interval") != "20" {
		t.Fatalf("expected state preserved, got %s", loc.RawQuery)
	}
	if provider.Calls.Load() != 1 {
		t.Fatalf("expected refresh to fetch, got %d", provider.Calls.Load())
	}
}

func TestBuildPageLastUpdatedUsesLocation(t *testing.T) {
	h := NewHandler(Config{Location: time.FixedZone("EST", -5*60*60)})
	board := testutil.SampleBoard("mlb", games.ProvenanceLive, testutil.SampleGame("Mets", "Braves"))
	state, err := h.dashboardState(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := h.buildPage(leaguesMLB(t), state, board)
	if page.LastUpdated != "1:30:00 PM EST" {
		t.Fatalf("expected localized clock, got %s", page.LastUpdated)
	}
	if len(page.LeagueLinks) == 0 || !page.LeagueLinks[0].Active {
		t.Fatalf("expected mlb link active")
	}
	if len(page.ViewLinks) != len(games.Views) {
		t.Fatalf("expected a link per view")
	}
}

func TestParseBool(t *testing.T) {
	if !parseBool("on", false) || parseBool("0", true) {
		t.Fatalf("unexpected parse of explicit values")
	}
	if !parseBool("maybe", true) {
		t.Fatalf("expected fallback for unknown value")
	}
}
