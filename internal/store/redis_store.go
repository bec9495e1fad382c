package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

const defaultKeyPrefix = "scores"

// RedisStore shares cached scoreboards between service instances. Redis
// failures are logged and read as cache misses.
type RedisStore struct {
	client    redis.Cmdable
	keyPrefix string
	retention time.Duration
	logger    *slog.Logger
}

// NewRedisClient parses url and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// NewRedisStore wraps client. Entries expire from Redis after retention (0 keeps them).
func NewRedisStore(client redis.Cmdable, keyPrefix string, retention time.Duration, logger *slog.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		retention: retention,
		logger:    logger,
	}
}

func (s *RedisStore) key(league string) string {
	return s.keyPrefix + ":" + league
}

// Get reads and decodes the cached board for league.
func (s *RedisStore) Get(ctx context.Context, league string) (games.Scoreboard, bool) {
	data, err := s.client.Get(ctx, s.key(league)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn(s.logger, "redis cache read failed", logging.FieldLeague, league, "err", err)
		}
		return games.Scoreboard{}, false
	}
	board, err := decodeBoard(data)
	if err != nil {
		logging.Warn(s.logger, "redis cache entry unreadable", logging.FieldLeague, league, "err", err)
		return games.Scoreboard{}, false
	}
	return board, true
}

// Set encodes and stores board under league.
func (s *RedisStore) Set(ctx context.Context, league string, board games.Scoreboard) {
	data, err := encodeBoard(board)
	if err != nil {
		logging.Warn(s.logger, "redis cache encode failed", logging.FieldLeague, league, "err", err)
		return
	}
	if err := s.client.Set(ctx, s.key(league), data, s.retention).Err(); err != nil {
		logging.Warn(s.logger, "redis cache write failed", logging.FieldLeague, league, "err", err)
	}
}

// Invalidate rewrites the cached board with a zero fetch timestamp.
func (s *RedisStore) Invalidate(ctx context.Context, league string) {
	board, ok := s.Get(ctx, league)
	if !ok {
		return
	}
	board.FetchedAt = time.Time{}
	s.Set(ctx, league, board)
}

func encodeBoard(board games.Scoreboard) ([]byte, error) {
	board.Cached = false
	return json.Marshal(board)
}

func decodeBoard(data []byte) (games.Scoreboard, error) {
	var board games.Scoreboard
	err := json.Unmarshal(data, &board)
	return board, err
}
