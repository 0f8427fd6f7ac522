package video

import (
	"time"

	"github.com/google/uuid"
)

// Video represents an embedded YouTube video in a client's gallery.
// YouTubeID is extracted from the submitted URL at creation time.
type Video struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClientID    uuid.UUID `db:"client_id" json:"client_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	YouTubeURL  string    `db:"youtube_url" json:"youtube_url"`
	YouTubeID   string    `db:"youtube_id" json:"youtube_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
