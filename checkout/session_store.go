package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	SessionKeyPrefix = "jp-checkout:"
	SessionTTL       = 24 * time.Hour
)

// SessionStore persists checkout sessions. Load returns (nil, nil) when the
// cart has no session.
type SessionStore interface {
	Load(ctx context.Context, cartID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

type RedisSessionStore struct {
	rdb redis.Cmdable
}

func NewRedisSessionStore(rdb redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (r *RedisSessionStore) Load(ctx context.Context, cartID string) (*Session, error) {
	raw, err := r.rdb.Get(ctx, SessionKeyPrefix+cartID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	s := stored.Session
	s.ClientSecret = stored.ClientSecret
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(storedSession{Session: *s, ClientSecret: s.ClientSecret})
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, SessionKeyPrefix+s.CartID, data, SessionTTL).Err()
}

// MemorySessionStore is the in-process SessionStore used by tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (m *MemorySessionStore) Load(_ context.Context, cartID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[cartID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemorySessionStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.CartID] = *s
	return nil
}
