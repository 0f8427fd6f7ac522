package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin account. Users are never exposed on the
// public gallery surface.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
