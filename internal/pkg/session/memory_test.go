package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryStoreCreateGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	userID := uuid.New()

	sessionID, err := store.Create(context.Background(), userID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sessionID) != 64 {
		t.Fatalf("expected 64-character session ID, got %d", len(sessionID))
	}

	got, err := store.Get(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	userID := uuid.New()

	sessionID, err := store.Create(context.Background(), userID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Move the clock past the TTL
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := store.Get(context.Background(), sessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
	if err := store.Refresh(context.Background(), sessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on refresh after expiry, got %v", err)
	}
}

func TestMemoryStoreSweepsExpiredOnCreate(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	stale, err := store.Create(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Move the clock past the TTL; the abandoned session is never
	// touched again by ID
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := store.Create(context.Background(), uuid.New()); err != nil {
		t.Fatalf("create: %v", err)
	}

	store.mu.RLock()
	defer store.mu.RUnlock()
	if _, ok := store.sessions[stale]; ok {
		t.Fatal("expected expired session to be swept")
	}
	if len(store.sessions) != 1 {
		t.Fatalf("expected 1 live session, got %d", len(store.sessions))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sessionID, err := store.Create(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Delete(context.Background(), sessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(context.Background(), sessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting again is not an error
	if err := store.Delete(context.Background(), sessionID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
