package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/acp/web/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// KeyPrefix namespaces session documents in the shared store
const KeyPrefix = "session:"

// Manager loads and saves sessions in a cache.Store
type Manager struct {
	store cache.Store
	ttl   time.Duration
}

// NewManager creates a manager. Keys are prefixed with KeyPrefix.
func NewManager(store cache.Store, ttl time.Duration) *Manager {
	return &Manager{
		store: cache.NewPrefixed(store, KeyPrefix),
		ttl:   ttl,
	}
}

// New starts an empty session with a fresh id
func (m *Manager) New() *Session {
	return newSession(uuid.NewString(), Data{}, true)
}

// Load returns the session stored under id. A missing, expired or unreadable
// session yields a fresh one so a stale cookie never blocks the user.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return m.New(), nil
	}

	raw, err := m.store.Get(ctx, id)
	if errors.Is(err, cache.ErrCacheMiss) {
		return m.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return m.New(), nil
	}
	return newSession(id, data, false), nil
}

// Save persists s and refreshes its expiry
func (m *Manager) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.Set(ctx, s.id, raw, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.isNew = false
	s.modified = false
	return nil
}

// Destroy removes the session stored under id
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// TTL returns how long an idle session is kept
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
