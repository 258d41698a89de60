package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Connection is the mutable per-platform connection record.
type Connection struct {
	Status      string         `json:"status"`
	ConnectedAt string         `json:"connected_at,omitempty"`
	LastSync    string         `json:"last_sync,omitempty"`
	SyncStatus  string         `json:"sync_status,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// ConnectionStore tracks connection state per integration. Injected so
// tests can substitute a fake.
type ConnectionStore interface {
	Connection(ctx context.Context, integrationID string) (Connection, bool, error)
	SetConnection(ctx context.Context, integrationID string, conn Connection) error
}

// StateStore holds pending OAuth state tokens with expiry.
type StateStore interface {
	Put(ctx context.Context, state, integrationID string, ttl time.Duration) error
	// Take returns the integration ID for a state token and removes it.
	Take(ctx context.Context, state string) (string, bool, error)
}

const stateTTL = 10 * time.Minute

// --- In-memory implementations (default demo mode) ---

type memoryConnectionStore struct {
	mu          sync.RWMutex
	connections map[string]Connection
}

// NewMemoryConnectionStore returns an in-memory connection store seeded
// with the demo connection data.
func NewMemoryConnectionStore() ConnectionStore {
	return &memoryConnectionStore{
		connections: map[string]Connection{
			"salesforce": {
				Status:      "connected",
				ConnectedAt: "2024-01-15T10:30:00Z",
				LastSync:    "2024-01-16T14:22:00Z",
				SyncStatus:  "syncing",
			},
		},
	}
}

func (s *memoryConnectionStore) Connection(_ context.Context, integrationID string) (Connection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.connections[integrationID]
	return conn, ok, nil
}

func (s *memoryConnectionStore) SetConnection(_ context.Context, integrationID string, conn Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[integrationID] = conn
	return nil
}

type memoryStateEntry struct {
	integrationID string
	expiresAt     time.Time
}

type memoryStateStore struct {
	mu     sync.Mutex
	states map[string]memoryStateEntry
}

func NewMemoryStateStore() StateStore {
	return &memoryStateStore{states: make(map[string]memoryStateEntry)}
}

func (s *memoryStateStore) Put(_ context.Context, state, integrationID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = memoryStateEntry{integrationID: integrationID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStateStore) Take(_ context.Context, state string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.states[state]
	if !ok {
		return "", false, nil
	}
	delete(s.states, state)
	if time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.integrationID, true, nil
}

// --- Redis implementations ---

type redisConnectionStore struct {
	client *redis.Client
}

type redisStateStore struct {
	client *redis.Client
}

// NewRedisStores returns Redis-backed connection and state stores
// sharing one client. Fails fast if Redis is unreachable.
func NewRedisStores(addr string, db int) (ConnectionStore, StateStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisConnectionStore{client: client}, &redisStateStore{client: client}, nil
}

func connectionKey(integrationID string) string {
	return fmt.Sprintf("integration_connection:%s", integrationID)
}

func stateKey(state string) string {
	return fmt.Sprintf("oauth_state:%s", state)
}

func (s *redisConnectionStore) Connection(ctx context.Context, integrationID string) (Connection, bool, error) {
	data, err := s.client.Get(ctx, connectionKey(integrationID)).Result()
	if err == redis.Nil {
		return Connection{}, false, nil
	}
	if err != nil {
		return Connection{}, false, fmt.Errorf("get connection from redis: %w", err)
	}

	var conn Connection
	if err := json.Unmarshal([]byte(data), &conn); err != nil {
		return Connection{}, false, fmt.Errorf("decode connection: %w", err)
	}
	return conn, true, nil
}

func (s *redisConnectionStore) SetConnection(ctx context.Context, integrationID string, conn Connection) error {
	data, err := json.Marshal(conn)
	if err != nil {
		return fmt.Errorf("encode connection: %w", err)
	}
	if err := s.client.Set(ctx, connectionKey(integrationID), data, 0).Err(); err != nil {
		return fmt.Errorf("save connection to redis: %w", err)
	}
	return nil
}

func (s *redisStateStore) Put(ctx context.Context, state, integrationID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKey(state), integrationID, ttl).Err(); err != nil {
		return fmt.Errorf("save oauth state to redis: %w", err)
	}
	return nil
}

func (s *redisStateStore) Take(ctx context.Context, state string) (string, bool, error) {
	key := stateKey(state)
	integrationID, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get oauth state from redis: %w", err)
	}
	s.client.Del(ctx, key)
	return integrationID, true, nil
}
