package video

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines video data access interface
type Repository interface {
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context) ([]*Video, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Video, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new video repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, video *Video) error {
	query := `
		INSERT INTO videos (id, client_id, title, description, youtube_url, youtube_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		video.ID,
		video.ClientID,
		video.Title,
		video.Description,
		video.YouTubeURL,
		video.YouTubeID,
		video.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	query := `SELECT * FROM videos WHERE id = $1`
	var v Video
	err := r.db.GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context) ([]*Video, error) {
	query := `SELECT * FROM videos ORDER BY created_at DESC`
	var videos []*Video
	err := r.db.SelectContext(ctx, &videos, query)
	return videos, err
}

func (r *repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Video, error) {
	query := `SELECT * FROM videos WHERE client_id = $1 ORDER BY created_at DESC`
	var videos []*Video
	err := r.db.SelectContext(ctx, &videos, query, clientID)
	return videos, err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM videos`
	var count int
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM videos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
