package photo

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/framevault/framevault-api/internal/pkg/storage"
)

const (
	maxFilesPerUpload = 20
	thumbWidth        = 400
)

// ClientDirectory is the client lookup the upload relay needs: every
// photo must reference an existing client at creation time.
type ClientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// UploadFile is one file part of a multipart upload
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// Service handles photo business logic
type Service struct {
	repo        Repository
	clients     ClientDirectory
	files       storage.Storage
	maxFileSize int64
}

// NewService creates photo service
func NewService(repo Repository, clients ClientDirectory, files storage.Storage, maxFileSize int64) *Service {
	return &Service{
		repo:        repo,
		clients:     clients,
		files:       files,
		maxFileSize: maxFileSize,
	}
}

type validatedFile struct {
	originalName string
	filename     string
	mimeType     string
	data         []byte
}

// Upload validates and stores a batch of files, then registers them as
// photos of the given client. The whole request fails as a unit: every
// file is validated before anything is written, rows are inserted in one
// transaction, and stored files are removed again if the insert fails.
func (s *Service) Upload(ctx context.Context, req *CreatePhotosRequest, uploads []UploadFile) ([]*Photo, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}
	if len(uploads) > maxFilesPerUpload {
		return nil, ErrTooManyFiles
	}

	exists, err := s.clients.Exists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrClientNotFound
	}

	// Phase 1: validate everything before writing anything
	validated := make([]validatedFile, 0, len(uploads))
	for _, up := range uploads {
		data, mimeType, err := storage.ValidateImage(up.Reader, s.maxFileSize)
		if err != nil {
			return nil, err
		}
		filename, err := storage.RandomFilename(up.Name)
		if err != nil {
			return nil, err
		}
		validated = append(validated, validatedFile{
			originalName: up.Name,
			filename:     filename,
			mimeType:     mimeType,
			data:         data,
		})
	}

	// Phase 2: write files and thumbnails to storage
	var stored []string
	cleanup := func() {
		for _, key := range stored {
			if err := s.files.Delete(context.Background(), key); err != nil {
				log.Warn().Err(err).Str("filename", key).Msg("Failed to clean up file after aborted upload")
			}
		}
	}

	now := time.Now()
	photos := make([]*Photo, 0, len(validated))
	for _, vf := range validated {
		if err := s.files.Put(ctx, vf.filename, bytes.NewReader(vf.data), vf.mimeType); err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, vf.filename)

		thumbFilename := s.makeThumbnail(ctx, vf)
		if thumbFilename != "" {
			stored = append(stored, thumbFilename)
		}

		url := s.files.URL(vf.filename)
		thumbnailURL := url
		if thumbFilename != "" {
			thumbnailURL = s.files.URL(thumbFilename)
		}

		photos = append(photos, &Photo{
			ID:            uuid.New(),
			ClientID:      req.ClientID,
			Title:         req.Title,
			Description:   req.Description,
			URL:           url,
			ThumbnailURL:  thumbnailURL,
			Filename:      vf.filename,
			ThumbFilename: thumbFilename,
			OriginalName:  vf.originalName,
			MimeType:      vf.mimeType,
			SizeBytes:     int64(len(vf.data)),
			CreatedAt:     now,
		})
	}

	// Phase 3: register rows atomically
	if err := s.repo.CreateAll(ctx, photos); err != nil {
		cleanup()
		return nil, err
	}

	return photos, nil
}

// makeThumbnail renders a JPEG thumbnail for raster formats. Animated
// GIFs and SVGs keep the original as their thumbnail; returns "" then.
func (s *Service) makeThumbnail(ctx context.Context, vf validatedFile) string {
	if vf.mimeType != "image/jpeg" && vf.mimeType != "image/png" {
		return ""
	}

	img, err := imaging.Decode(bytes.NewReader(vf.data), imaging.AutoOrientation(true))
	if err != nil {
		log.Warn().Err(err).Str("filename", vf.filename).Msg("Failed to decode image for thumbnail")
		return ""
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		log.Warn().Err(err).Str("filename", vf.filename).Msg("Failed to encode thumbnail")
		return ""
	}

	ext := filepath.Ext(vf.filename)
	thumbFilename := strings.TrimSuffix(vf.filename, ext) + "_thumb.jpg"
	if err := s.files.Put(ctx, thumbFilename, &buf, "image/jpeg"); err != nil {
		log.Warn().Err(err).Str("filename", thumbFilename).Msg("Failed to store thumbnail")
		return ""
	}
	return thumbFilename
}

// List returns all photos, optionally scoped to one client
func (s *Service) List(ctx context.Context, clientID *uuid.UUID) ([]*Photo, error) {
	if clientID != nil {
		return s.repo.ListByClient(ctx, *clientID)
	}
	return s.repo.List(ctx)
}

// ListByClient returns a client's photos, newest first
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Photo, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Delete removes the photo row and its stored files. The row goes first;
// file removal failures leave an orphan file, never an orphan row.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPhotoNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.files.Delete(ctx, p.Filename); err != nil {
		log.Warn().Err(err).Str("filename", p.Filename).Msg("Failed to remove photo file")
	}
	if p.ThumbFilename != "" {
		if err := s.files.Delete(ctx, p.ThumbFilename); err != nil {
			log.Warn().Err(err).Str("filename", p.ThumbFilename).Msg("Failed to remove thumbnail")
		}
	}
	return nil
}
