package client

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a gallery client. AccessToken is the opaque
// capability granting public read access to the client's gallery; it is
// generated once at creation and never changes.
type Client struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Description  string     `db:"description" json:"description"`
	AccessToken  string     `db:"access_token" json:"access_token"`
	AccessCount  int64      `db:"access_count" json:"access_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	LastAccessed *time.Time `db:"last_accessed" json:"last_accessed"`
}
