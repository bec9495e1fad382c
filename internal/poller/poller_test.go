package poller

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/scoreboard"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
	"github.com/preston-bernstein/sports-scores-service/internal/teststubs"
)

type stubSource struct {
	mu       sync.Mutex
	boards   map[string]games.Scoreboard
	requests []string
	calls    atomic.Int32
	notify   chan struct{}
}

func (s *stubSource) Scores(ctx context.Context, league string) games.Scoreboard {
	_ = ctx
	s.mu.Lock()
	s.requests = append(s.requests, league)
	board, ok := s.boards[league]
	s.mu.Unlock()
	if s.calls.Add(1) == 1 && s.notify != nil {
		close(s.notify)
	}
	if !ok {
		board = games.Scoreboard{League: league, Provenance: games.ProvenanceLive}
	}
	return board
}

func (s *stubSource) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func liveBoard(league string) games.Scoreboard {
	return games.Scoreboard{
		League:     league,
		Provenance: games.ProvenanceLive,
		Games:      []games.Game{{HomeTeam: "Home", AwayTeam: "Away", HomeScore: 3, AwayScore: 1, Status: "Final", Completed: true}},
		FetchedAt:  time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestPollerRefreshesAndPublishesEachLeague(t *testing.T) {
	source := &stubSource{
		boards: map[string]games.Scoreboard{
			"mlb": liveBoard("mlb"),
			"nba": liveBoard("nba"),
		},
		notify: make(chan struct{}),
	}
	publisher := &teststubs.StubPublisher{}

	p := New(source, publisher, []string{"mlb", "nba"}, nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case <-source.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}
	time.Sleep(30 * time.Millisecond)

	cancel()
	_ = p.Stop(context.Background())

	requests := source.Requests()
	if len(requests) < 2 || requests[0] != "mlb" || requests[1] != "nba" {
		t.Fatalf("expected leagues polled in order, got %v", requests)
	}
	boards := publisher.Boards()
	if len(boards) < 2 {
		t.Fatalf("expected boards published, got %d", len(boards))
	}
	if boards[0].League != "mlb" || boards[1].League != "nba" {
		t.Fatalf("unexpected publish order: %s, %s", boards[0].League, boards[1].League)
	}
	if !p.Status().IsReady() {
		t.Fatalf("expected poller ready after successful cycles")
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	source := &stubSource{}
	p := New(source, nil, []string{"mlb"}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx)

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		t.Fatalf("expected poller to be marked started")
	}
	_ = p.Stop(context.Background())
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&stubSource{}, nil, nil, nil, nil, time.Hour)
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error on second stop: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&stubSource{}, nil, nil, nil, nil, 0)
	if p.Interval() != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.Interval())
	}
}

func TestPollerCopiesLeagues(t *testing.T) {
	leagues := []string{"mlb"}
	p := New(&stubSource{}, nil, leagues, nil, nil, time.Minute)
	leagues[0] = "nhl"
	if p.leagues[0] != "mlb" {
		t.Fatalf("expected poller to keep its own league list, got %v", p.leagues)
	}
}

func TestPollerFallbackCountsAsFailure(t *testing.T) {
	source := &stubSource{
		boards: map[string]games.Scoreboard{
			"mlb": {League: "mlb", Provenance: games.ProvenanceSample, FallbackReason: "network error fetching mlb scoreboard"},
		},
	}
	publisher := &teststubs.StubPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(source, publisher, []string{"mlb"}, logger, nil, time.Minute)

	p.fetchOnce(context.Background())
	p.fetchOnce(context.Background())
	p.fetchOnce(context.Background())

	status := p.Status()
	if status.ConsecutiveFailures != 3 {
		t.Fatalf("expected 3 failures, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready without a success")
	}
	// Sample boards are still pushed so viewers see something.
	if len(publisher.Boards()) != 3 {
		t.Fatalf("expected sample boards published, got %d", len(publisher.Boards()))
	}
}

func TestPollerRecoversAfterFailure(t *testing.T) {
	source := &stubSource{
		boards: map[string]games.Scoreboard{
			"mlb": {League: "mlb", FallbackReason: "boom"},
		},
	}
	p := New(source, nil, []string{"mlb"}, nil, nil, time.Minute)
	p.fetchOnce(context.Background())
	if p.Status().ConsecutiveFailures != 1 {
		t.Fatalf("expected one failure")
	}

	source.mu.Lock()
	source.boards["mlb"] = liveBoard("mlb")
	source.mu.Unlock()
	p.fetchOnce(context.Background())

	status := p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", status)
	}
	if status.LastSuccess.IsZero() || !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestPollerSkipsRemainingLeaguesWhenCanceled(t *testing.T) {
	source := &stubSource{}
	p := New(source, nil, []string{"mlb", "nba"}, nil, nil, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.fetchOnce(ctx)

	if len(source.Requests()) != 0 {
		t.Fatalf("expected no leagues polled after cancel, got %v", source.Requests())
	}
	if p.Status().ConsecutiveFailures != 1 {
		t.Fatalf("expected canceled cycle recorded as failure")
	}
}

func TestStatusIsReady(t *testing.T) {
	if (Status{}).IsReady() {
		t.Fatalf("expected zero status not ready")
	}
	ok := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !ok.IsReady() {
		t.Fatalf("expected ready with fewer than 3 failures")
	}
	bad := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if bad.IsReady() {
		t.Fatalf("expected not ready at 3 failures")
	}
}

func TestPollerWarmsScoreboardCache(t *testing.T) {
	provider := &teststubs.StubProvider{
		Games: []games.Game{{HomeTeam: "Rangers", AwayTeam: "Bruins", HomeScore: 2, AwayScore: 1}},
	}
	svc := scoreboard.NewService(scoreboard.Config{
		Primary: provider,
		Store:   store.NewMemoryStore(),
		TTL:     time.Minute,
	})
	publisher := &teststubs.StubPublisher{}
	p := New(svc, publisher, []string{"nhl"}, nil, nil, time.Minute)

	p.fetchOnce(context.Background())
	p.fetchOnce(context.Background())

	if provider.Calls.Load() != 1 {
		t.Fatalf("expected one upstream call within TTL, got %d", provider.Calls.Load())
	}
	boards := publisher.Boards()
	if len(boards) != 2 || boards[1].Cached != true {
		t.Fatalf("expected second publish served from cache, got %+v", boards)
	}
	if !p.Status().IsReady() {
		t.Fatalf("expected ready")
	}
}
