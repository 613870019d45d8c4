// Package resultstore holds one search's immutable offer set for the
// lifetime of the user's refinement session. Filter changes re-evaluate
// against the stored set instead of re-querying the provider. Entries are
// TTL-bounded; this is session state, not a cross-request cache and not
// persistence.
package resultstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyagerhq/tripsearch/internal/models"
)

// Session is everything needed to re-run filter/sort/paginate for one
// search: the offer set, its metadata, the outcome tagging, and the
// fingerprint of the filter state last applied (used to reset pagination).
type Session struct {
	SearchID   string               `json:"search_id"`
	Kind       models.OfferKind     `json:"kind"`
	Status     models.OutcomeStatus `json:"status"`
	Reason     string               `json:"reason,omitempty"`
	Offers     []models.Offer       `json:"offers"`
	Metadata   models.Metadata      `json:"metadata"`
	FilterHash string               `json:"filter_hash"`
	CreatedAt  time.Time            `json:"created_at"`
}

type Store interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, searchID string) (*Session, bool)
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  30 * time.Minute,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, storeKey(session.SearchID), data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, searchID string) (*Session, bool) {
	data, err := s.client.Get(ctx, storeKey(searchID)).Bytes()
	if err != nil {
		return nil, false
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func storeKey(searchID string) string {
	return "search:" + searchID
}

// MemoryStore is the single-process stand-in used when Redis is disabled,
// and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SearchID] = session
	return nil
}

// Get returns a copy of the stored session. Callers mutate the fingerprint
// and re-save, so handing out the stored pointer would race concurrent
// requests for the same search id; the Redis store gets the same isolation
// from its JSON round-trip.
func (s *MemoryStore) Get(ctx context.Context, searchID string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[searchID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.ttl > 0 && time.Since(session.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, searchID)
		s.mu.Unlock()
		return nil, false
	}

	copied := *session
	return &copied, true
}

func (s *MemoryStore) Close() error {
	return nil
}
