package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// StoredFile identifies files on storage belonging to a deleted photo row.
type StoredFile struct {
	Filename      string `db:"filename"`
	ThumbFilename string `db:"thumb_filename"`
}

// Repository defines client data access interface
type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	GetByAccessToken(ctx context.Context, accessToken string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, client *Client) error
	// DeleteCascade removes the client and all dependent photo and video
	// rows in a single transaction, returning the storage files of the
	// deleted photos so callers can clean them up after commit.
	DeleteCascade(ctx context.Context, id uuid.UUID) ([]StoredFile, error)
	// Touch records a successful public resolution: bumps access_count
	// and sets last_accessed to now.
	Touch(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new client repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, client *Client) error {
	query := `
		INSERT INTO clients (id, name, email, description, access_token, access_count, created_at, updated_at, last_accessed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Description,
		client.AccessToken,
		client.AccessCount,
		client.CreatedAt,
		client.UpdatedAt,
		client.LastAccessed,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	query := `SELECT * FROM clients WHERE id = $1`
	var c Client
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByAccessToken(ctx context.Context, accessToken string) (*Client, error) {
	// Exact, case-sensitive match only
	query := `SELECT * FROM clients WHERE access_token = $1`
	var c Client
	err := r.db.GetContext(ctx, &c, query, accessToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]*Client, error) {
	query := `SELECT * FROM clients ORDER BY created_at DESC`
	var clients []*Client
	err := r.db.SelectContext(ctx, &clients, query)
	return clients, err
}

func (r *repository) Update(ctx context.Context, client *Client) error {
	// access_token is immutable after creation and deliberately absent here
	query := `
		UPDATE clients
		SET name = $2, email = $3, description = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Description,
		client.UpdatedAt,
	)
	return err
}

func (r *repository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]StoredFile, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var files []StoredFile
	if err := tx.SelectContext(ctx, &files,
		`DELETE FROM photos WHERE client_id = $1 RETURNING filename, thumb_filename`, id); err != nil {
		return nil, fmt.Errorf("failed to delete photos: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE client_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete videos: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete client: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrClientNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cascade delete: %w", err)
	}
	return files, nil
}

func (r *repository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE clients
		SET last_accessed = now(), access_count = access_count + 1
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM clients`
	var count int
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}
