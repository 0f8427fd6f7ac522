package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo represents an uploaded gallery photo. Filename and ThumbFilename
// are storage keys; URL may be host-relative for local storage and is
// absolutized against the serving request.
type Photo struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ClientID      uuid.UUID `db:"client_id" json:"client_id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	URL           string    `db:"url" json:"url"`
	ThumbnailURL  string    `db:"thumbnail_url" json:"thumbnail_url"`
	Filename      string    `db:"filename" json:"filename"`
	ThumbFilename string    `db:"thumb_filename" json:"-"`
	OriginalName  string    `db:"original_name" json:"original_name"`
	MimeType      string    `db:"mime_type" json:"mime_type"`
	SizeBytes     int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
