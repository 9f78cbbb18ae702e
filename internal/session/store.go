package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a session id has no active marker.
var ErrNoSession = errors.New("no active session")

// Store persists session markers: operator name keyed by session id.
type Store interface {
	Put(ctx context.Context, id, name string, ttl time.Duration) error
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

const redisKeyPrefix = "session:"

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore returns a Store backed by Redis.
func NewRedisStore(addr, username, password string) Store {
	return &redisStore{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       0,
	})}
}

func (s *redisStore) Put(ctx context.Context, id, name string, ttl time.Duration) error {
	return s.rdb.Set(ctx, redisKeyPrefix+id, name, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, id string) (string, error) {
	name, err := s.rdb.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return name, err
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+id).Err()
}

type memoryEntry struct {
	name    string
	expires time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns an in-process Store, used when no Redis is
// configured and by tests.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Put(_ context.Context, id, name string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{name: name, expires: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expires) {
		delete(s.entries, id)
		return "", ErrNoSession
	}
	return e.name, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
