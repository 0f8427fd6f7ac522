package photo

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreatePhotosRequest carries the multipart form fields of POST /photos.
// The file parts travel separately.
type CreatePhotosRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	ClientID    uuid.UUID `json:"client_id" validate:"required"`
	Description string    `json:"description" validate:"max=2000"`
}

// PhotoResponse represents a photo in API responses
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    string    `json:"created_at"`
}

// PhotoResponseFromEntity converts entity to response DTO. baseURL
// ("scheme://host" of the serving request) absolutizes host-relative
// URLs produced by local storage; S3 URLs are already absolute.
func PhotoResponseFromEntity(p *Photo, baseURL string) *PhotoResponse {
	return &PhotoResponse{
		ID:           p.ID,
		ClientID:     p.ClientID,
		Title:        p.Title,
		Description:  p.Description,
		URL:          absolutize(p.URL, baseURL),
		ThumbnailURL: absolutize(p.ThumbnailURL, baseURL),
		OriginalName: p.OriginalName,
		MimeType:     p.MimeType,
		SizeBytes:    p.SizeBytes,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func absolutize(url, baseURL string) string {
	if strings.HasPrefix(url, "/") {
		return baseURL + url
	}
	return url
}
