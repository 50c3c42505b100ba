package session

import (
	"context"

	"github.com/birdiland/backend/internal/model/chat"
)

// Store holds the bounded, ordered turn log for each (agent, user) pair.
// Logs are created lazily on first append; Clear removes the log
// entirely, so a subsequent History behaves as if the session never
// existed. The store enforces the length cap itself: when an append
// would exceed the cap, the oldest turn is evicted.
type Store interface {
	// Append stamps and stores a turn, returning the stored copy.
	Append(ctx context.Context, key chat.SessionKey, turn chat.Turn) (chat.Turn, error)
	// History returns the session's turns oldest first. A session that
	// was never written to yields an empty slice, not an error.
	History(ctx context.Context, key chat.SessionKey) ([]chat.Turn, error)
	// Clear removes the session's log.
	Clear(ctx context.Context, key chat.SessionKey) error
}
