package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Games: []games.Game{{HomeTeam: "Yankees"}}, Err: err}
	if _, got := p.FetchGames(context.Background(), "mlb"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", p.Calls.Load())
	}
	if leagues := p.Leagues(); len(leagues) != 1 || leagues[0] != "mlb" {
		t.Fatalf("expected mlb to be recorded, got %v", leagues)
	}
}

func TestStubProviderNotifyClosesOnce(t *testing.T) {
	p := &StubProvider{Notify: make(chan struct{})}
	_, _ = p.FetchGames(context.Background(), "nba")
	_, _ = p.FetchGames(context.Background(), "nba")

	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
}

func TestStubFetcher(t *testing.T) {
	f := &StubFetcher{Body: []byte("<html></html>")}
	body, err := f.FetchRawPayload(context.Background(), "mlb")
	if err != nil || string(body) != "<html></html>" {
		t.Fatalf("unexpected fetch result %q err %v", body, err)
	}
	if f.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", f.Calls.Load())
	}
}

func TestStubPublisher(t *testing.T) {
	p := &StubPublisher{}
	p.Publish(games.Scoreboard{League: "nhl"})
	boards := p.Boards()
	if len(boards) != 1 || boards[0].League != "nhl" {
		t.Fatalf("expected published board, got %+v", boards)
	}
}
