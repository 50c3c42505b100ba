package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/birdiland/backend/internal/errx"
	"github.com/birdiland/backend/internal/model/chat"
	logx "github.com/birdiland/backend/pkg/logger"
)

// RedisStore implements Store on Redis lists, so session history
// survives process restarts and can be shared between replicas.
// The cap is enforced with LTRIM on every append.
type RedisStore struct {
	rdb      redis.Cmdable
	capacity int
	ttl      time.Duration
}

// NewRedisStore wraps a Redis client with the given history cap.
// A zero ttl means keys never expire.
func NewRedisStore(rdb redis.Cmdable, capacity int, ttl time.Duration) *RedisStore {
	if capacity < 1 {
		capacity = 1
	}
	return &RedisStore{rdb: rdb, capacity: capacity, ttl: ttl}
}

func (s *RedisStore) sessionKey(key chat.SessionKey) string {
	return fmt.Sprintf("chat:%s:%s:turns", key.AgentID, key.UserID)
}

// Append pushes a turn to the tail of the session list and trims the
// list down to the cap.
func (s *RedisStore) Append(ctx context.Context, key chat.SessionKey, turn chat.Turn) (chat.Turn, error) {
	turn.ID = uuid.NewString()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	b, err := json.Marshal(turn)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("marshal turn: %w", err)
	}

	redisKey := s.sessionKey(key)
	if err := s.rdb.RPush(ctx, redisKey, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", redisKey).Msg("failed to push turn to redis")
		return chat.Turn{}, errx.WrapRedis(err)
	}
	if err := s.rdb.LTrim(ctx, redisKey, int64(-s.capacity), -1).Err(); err != nil {
		logx.Error().Err(err).Str("key", redisKey).Msg("failed to trim session log")
		return chat.Turn{}, errx.WrapRedis(err)
	}
	// extend TTL on touch
	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, redisKey, s.ttl).Err(); err != nil {
			logx.Warn().Err(err).Str("key", redisKey).Msg("failed to set session TTL")
		}
	}

	return turn, nil
}

// History loads the full session list oldest first.
func (s *RedisStore) History(ctx context.Context, key chat.SessionKey) ([]chat.Turn, error) {
	redisKey := s.sessionKey(key)

	rows, err := s.rdb.LRange(ctx, redisKey, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []chat.Turn{}, nil
		}
		logx.Error().Err(err).Str("key", redisKey).Msg("failed to load session log from redis")
		return nil, errx.WrapRedis(err)
	}

	turns := make([]chat.Turn, 0, len(rows))
	for i, row := range rows {
		var turn chat.Turn
		if err := json.Unmarshal([]byte(row), &turn); err != nil {
			// A fragment that cannot be interpreted is skipped, not fatal.
			logx.Warn().Err(err).Str("key", redisKey).Int("index", i).Msg("skipping malformed turn")
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Clear deletes the session list.
func (s *RedisStore) Clear(ctx context.Context, key chat.SessionKey) error {
	redisKey := s.sessionKey(key)
	if err := s.rdb.Del(ctx, redisKey).Err(); err != nil {
		logx.Error().Err(err).Str("key", redisKey).Msg("failed to delete session log")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
var _ Store = (*MemoryStore)(nil)
