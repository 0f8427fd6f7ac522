package video

import (
	"time"

	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/youtube"
)

// CreateVideoRequest for POST /videos
type CreateVideoRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	ClientID    uuid.UUID `json:"client_id" validate:"required"`
	YouTubeURL  string    `json:"youtube_url" validate:"required,youtube_url"`
	Description string    `json:"description" validate:"max=2000"`
}

// VideoResponse represents a video in API responses
type VideoResponse struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	YouTubeURL   string    `json:"youtube_url"`
	YouTubeID    string    `json:"youtube_id"`
	EmbedURL     string    `json:"embed_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    string    `json:"created_at"`
}

// VideoResponseFromEntity converts entity to response DTO
func VideoResponseFromEntity(v *Video) *VideoResponse {
	return &VideoResponse{
		ID:           v.ID,
		ClientID:     v.ClientID,
		Title:        v.Title,
		Description:  v.Description,
		YouTubeURL:   v.YouTubeURL,
		YouTubeID:    v.YouTubeID,
		EmbedURL:     youtube.EmbedURL(v.YouTubeID),
		ThumbnailURL: youtube.ThumbnailURL(v.YouTubeID),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
}
