package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisStoreKeyUsesPrefix(t *testing.T) {
	s := NewRedisStore(unreachableClient(), "", 0, nil)
	if got := s.key("mlb"); got != "scores:mlb" {
		t.Fatalf("expected default prefix, got %s", got)
	}
	s = NewRedisStore(unreachableClient(), "dash", 0, nil)
	if got := s.key("nba"); got != "dash:nba" {
		t.Fatalf("expected custom prefix, got %s", got)
	}
}

func TestRedisStoreUnavailableReadsAsMiss(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	s := NewRedisStore(client, "test", time.Minute, nil)
	ctx := context.Background()

	s.Set(ctx, "mlb", board("mlb", time.Now(), "Yankees"))
	s.Invalidate(ctx, "mlb")
	if _, ok := s.Get(ctx, "mlb"); ok {
		t.Fatalf("expected miss when redis is unreachable")
	}
}

func TestBoardEncodingRoundTripsAndClearsCachedFlag(t *testing.T) {
	fetched := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := board("mlb", fetched, "Yankees")
	in.Cached = true
	in.Provenance = games.ProvenanceSample
	in.FallbackReason = "empty"

	data, err := encodeBoard(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := decodeBoard(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Cached {
		t.Fatalf("expected cached flag cleared on write")
	}
	if !out.FetchedAt.Equal(fetched) || out.Provenance != games.ProvenanceSample || out.FallbackReason != "empty" {
		t.Fatalf("unexpected decoded board %+v", out)
	}
	if len(out.Games) != 1 || out.Games[0].HomeTeam != "Yankees" {
		t.Fatalf("unexpected decoded games %+v", out.Games)
	}
}

func TestDecodeBoardRejectsGarbage(t *testing.T) {
	if _, err := decodeBoard([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}
