package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/birdiland/backend/internal/model/chat"
)

// MemoryStore implements Store with mutex-guarded in-memory maps,
// suitable for single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	logs     map[chat.SessionKey][]chat.Turn
}

// NewMemoryStore bootstraps an in-memory store with the given history cap.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryStore{
		capacity: capacity,
		logs:     make(map[chat.SessionKey][]chat.Turn),
	}
}

// Append stores a turn at the tail of the session log, evicting from
// the front once the cap is reached.
func (s *MemoryStore) Append(_ context.Context, key chat.SessionKey, turn chat.Turn) (chat.Turn, error) {
	turn.ID = uuid.NewString()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := append(s.logs[key], turn)
	if len(log) > s.capacity {
		log = log[len(log)-s.capacity:]
	}
	s.logs[key] = log

	return turn, nil
}

// History returns a copy of the session log, insertion order preserved.
func (s *MemoryStore) History(_ context.Context, key chat.SessionKey) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[key]
	copied := make([]chat.Turn, len(log))
	copy(copied, log)
	return copied, nil
}

// Clear removes the log for the session key entirely.
func (s *MemoryStore) Clear(_ context.Context, key chat.SessionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, key)
	return nil
}
