// Package session provides the server-side session store backing admin
// authentication. Handlers receive a Store by injection; there is no
// process-wide session state.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session ID does not map to a live session.
var ErrNotFound = errors.New("session not found")

// Store defines session persistence keyed by opaque session ID.
type Store interface {
	// Create starts a session for the user and returns its ID.
	Create(ctx context.Context, userID uuid.UUID) (string, error)

	// Get returns the user ID for a session, or ErrNotFound if the
	// session does not exist or has expired.
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)

	// Refresh extends a session's lifetime to a full TTL from now.
	Refresh(ctx context.Context, sessionID string) error

	// Delete ends a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
