package video

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/youtube"
)

// ClientDirectory is the client lookup video creation needs
type ClientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service handles video business logic
type Service struct {
	repo    Repository
	clients ClientDirectory
}

// NewService creates video service
func NewService(repo Repository, clients ClientDirectory) *Service {
	return &Service{repo: repo, clients: clients}
}

// Create validates the YouTube URL, extracts the video ID and persists
// the video for an existing client.
func (s *Service) Create(ctx context.Context, req *CreateVideoRequest) (*Video, error) {
	videoID, err := youtube.ParseVideoID(req.YouTubeURL)
	if err != nil {
		return nil, err
	}

	exists, err := s.clients.Exists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrClientNotFound
	}

	v := &Video{
		ID:          uuid.New(),
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		YouTubeURL:  req.YouTubeURL,
		YouTubeID:   videoID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// List returns all videos, optionally scoped to one client
func (s *Service) List(ctx context.Context, clientID *uuid.UUID) ([]*Video, error) {
	if clientID != nil {
		return s.repo.ListByClient(ctx, *clientID)
	}
	return s.repo.List(ctx)
}

// ListByClient returns a client's videos, newest first
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Video, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Delete removes a video
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrVideoNotFound
	}
	return s.repo.Delete(ctx, id)
}
