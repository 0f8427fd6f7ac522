package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/token"
)

// MemoryStore implements Store in process memory. Used in tests and in
// development without Redis; sessions do not survive restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

type memorySession struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID, err := token.NewSessionID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	now := s.now()
	// Sweep expired sessions so abandoned ones don't pile up
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sessionID] = memorySession{
		userID:    userID,
		expiresAt: now.Add(s.ttl),
	}
	s.mu.Unlock()

	return sessionID, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return uuid.Nil, ErrNotFound
	}
	if s.now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return uuid.Nil, ErrNotFound
	}
	return sess.userID, nil
}

func (s *MemoryStore) Refresh(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || s.now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return ErrNotFound
	}
	sess.expiresAt = s.now().Add(s.ttl)
	s.sessions[sessionID] = sess
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
