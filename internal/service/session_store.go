package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"todo-app/internal/domain"
	"todo-app/internal/repository"
)

// SessionStore guarda sesiones indexadas por el hash del token. El TTL sale
// de Session.ExpiresAt.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
}

var _ SessionStore = (*repository.PgSessionRepository)(nil)

type memorySessionStore struct {
	mu    sync.Mutex
	items map[string]domain.Session
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		items: make(map[string]domain.Session),
	}
}

func (s *memorySessionStore) Create(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[session.ID]; ok && !existing.IsExpiredAt(time.Now().UTC()) {
		return repository.ErrDuplicateSession
	}
	s.items[session.ID] = session
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[id]
	if !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	if session.IsExpiredAt(time.Now().UTC()) {
		delete(s.items, id)
		return domain.Session{}, repository.ErrSessionNotFound
	}
	return session, nil
}

type redisKVClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type redisSessionStore struct {
	client redisKVClient
	prefix string
}

// NewRedisSessionStore guarda cada sesion bajo "<collection>:<id>" con TTL.
func NewRedisSessionStore(client *redis.Client, collection string) SessionStore {
	if client == nil {
		return nil
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = "sessions"
	}
	return &redisSessionStore{
		client: client,
		prefix: collection + ":",
	}
}

func (s *redisSessionStore) Create(ctx context.Context, session domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, s.prefix+session.ID, payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrDuplicateSession
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}
