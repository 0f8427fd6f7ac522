package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access interface
type Repository interface {
	// CreateAll inserts every photo in one transaction; either all rows
	// land or none do.
	CreateAll(ctx context.Context, photos []*Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	List(ctx context.Context) ([]*Photo, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Photo, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const insertPhoto = `
	INSERT INTO photos (id, client_id, title, description, url, thumbnail_url, filename, thumb_filename, original_name, mime_type, size_bytes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func (r *repository) CreateAll(ctx context.Context, photos []*Photo) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range photos {
		if _, err := tx.ExecContext(ctx, insertPhoto,
			p.ID,
			p.ClientID,
			p.Title,
			p.Description,
			p.URL,
			p.ThumbnailURL,
			p.Filename,
			p.ThumbFilename,
			p.OriginalName,
			p.MimeType,
			p.SizeBytes,
			p.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert photo: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM photos WHERE id = $1`
	var p Photo
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Photo, error) {
	query := `SELECT * FROM photos ORDER BY created_at DESC`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query)
	return photos, err
}

func (r *repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM photos WHERE client_id = $1 ORDER BY created_at DESC`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, clientID)
	return photos, err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM photos`
	var count int
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM photos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
