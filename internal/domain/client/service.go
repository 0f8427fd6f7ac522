package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/framevault/framevault-api/internal/pkg/storage"
	"github.com/framevault/framevault-api/internal/pkg/token"
)

// Service handles client business logic, including resolving public
// gallery access tokens.
type Service struct {
	repo  Repository
	files storage.Storage
}

// NewService creates client service
func NewService(repo Repository, files storage.Storage) *Service {
	return &Service{repo: repo, files: files}
}

// Create generates the access token and persists the client.
// LastAccessed starts null; it is only ever set by public resolution.
func (s *Service) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	accessToken, err := token.NewAccessToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Client{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		AccessToken: accessToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID returns a client by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClientNotFound
	}
	return c, nil
}

// List returns all clients, newest first
func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

// Update changes name, email and description. The access token stays
// untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateClientRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClientNotFound
	}

	c.Name = req.Name
	c.Email = req.Email
	c.Description = req.Description
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the client together with all dependent photo and video
// rows in one transaction, then removes the photo files from storage.
// File cleanup happens after commit and is best-effort: a failed removal
// leaves an orphan file, never an orphan row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	files, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := s.files.Delete(ctx, f.Filename); err != nil {
			log.Warn().Err(err).Str("filename", f.Filename).Msg("Failed to remove photo file after client delete")
		}
		if f.ThumbFilename != "" {
			if err := s.files.Delete(ctx, f.ThumbFilename); err != nil {
				log.Warn().Err(err).Str("filename", f.ThumbFilename).Msg("Failed to remove thumbnail after client delete")
			}
		}
	}
	return nil
}

// Resolve maps a public access token to its client. The token must match
// exactly; malformed and unknown tokens produce the identical
// ErrClientNotFound so callers cannot probe the token format. A hit
// records last_accessed and access_count in the background; failure to
// record never fails the resolution.
func (s *Service) Resolve(ctx context.Context, accessToken string) (*Client, error) {
	c, err := s.repo.GetByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClientNotFound
	}

	go func(id uuid.UUID) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Touch(ctx, id); err != nil {
			log.Warn().Err(err).Str("client_id", id.String()).Msg("Failed to record gallery access")
		}
	}(c.ID)

	return c, nil
}
