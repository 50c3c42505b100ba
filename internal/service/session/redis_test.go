package session_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/birdiland/backend/internal/model/chat"
	"github.com/birdiland/backend/internal/service/session"
)

func newRedisStore(t *testing.T, capacity int, ttl time.Duration) *session.RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStore(client, capacity, ttl)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t, 10, 0)
	ctx := context.Background()
	key := chat.SessionKey{AgentID: "canary", UserID: "alice"}

	if _, err := store.Append(ctx, key, chat.NewTurn(chat.RoleUser, "你好")); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if _, err := store.Append(ctx, key, chat.NewTurn(chat.RoleAssistant, "你好呀")); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	turns, err := store.History(ctx, key)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != chat.RoleUser || turns[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", turns)
	}
	if turns[1].Content != "你好呀" {
		t.Fatalf("unexpected content: %s", turns[1].Content)
	}
}

func TestRedisStoreHistoryBound(t *testing.T) {
	const capacity = 4
	store := newRedisStore(t, capacity, 0)
	ctx := context.Background()
	key := chat.SessionKey{AgentID: "canary", UserID: "bob"}

	for i := 0; i < 7; i++ {
		if _, err := store.Append(ctx, key, chat.NewTurn(chat.RoleUser, fmt.Sprintf("m%d", i))); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	turns, err := store.History(ctx, key)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(turns) != capacity {
		t.Fatalf("expected %d turns, got %d", capacity, len(turns))
	}
	if turns[0].Content != "m3" || turns[capacity-1].Content != "m6" {
		t.Fatalf("unexpected window: first=%s last=%s", turns[0].Content, turns[capacity-1].Content)
	}
}

func TestRedisStoreMissingSession(t *testing.T) {
	store := newRedisStore(t, 10, 0)
	ctx := context.Background()

	turns, err := store.History(ctx, chat.SessionKey{AgentID: "canary", UserID: "nobody"})
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(turns))
	}
}

func TestRedisStoreClear(t *testing.T) {
	store := newRedisStore(t, 10, 0)
	ctx := context.Background()
	key := chat.SessionKey{AgentID: "canary", UserID: "carol"}

	if _, err := store.Append(ctx, key, chat.NewTurn(chat.RoleUser, "hello")); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if err := store.Clear(ctx, key); err != nil {
		t.Fatalf("Clear err: %v", err)
	}

	turns, err := store.History(ctx, key)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history after clear, got %d", len(turns))
	}
}
