package dashboard

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Stats is the aggregate admin dashboard projection
type Stats struct {
	ClientCount int   `json:"client_count"`
	PhotoCount  int   `json:"photo_count"`
	VideoCount  int   `json:"video_count"`
	TotalViews  int64 `json:"total_views"`

	RecentClients    []ClientSummary `json:"recent_clients"`
	RecentlyAccessed []ClientSummary `json:"recently_accessed"`
}

// ClientSummary is the trimmed client row shown on the dashboard
type ClientSummary struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	AccessCount  int64      `db:"access_count" json:"access_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastAccessed *time.Time `db:"last_accessed" json:"last_accessed"`
}

// Repository aggregates dashboard reads over the content tables
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new dashboard repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetStats builds the dashboard projection. Total views is the sum of
// real per-client access counters, not a placeholder constant.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		RecentClients:    []ClientSummary{},
		RecentlyAccessed: []ClientSummary{},
	}

	if err := r.db.GetContext(ctx, &stats.ClientCount, `SELECT COUNT(*) FROM clients`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.PhotoCount, `SELECT COUNT(*) FROM photos`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.VideoCount, `SELECT COUNT(*) FROM videos`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.TotalViews,
		`SELECT COALESCE(SUM(access_count), 0) FROM clients`); err != nil {
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &stats.RecentClients, `
		SELECT id, name, access_count, created_at, last_accessed
		FROM clients
		ORDER BY created_at DESC
		LIMIT 5
	`); err != nil {
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &stats.RecentlyAccessed, `
		SELECT id, name, access_count, created_at, last_accessed
		FROM clients
		WHERE last_accessed IS NOT NULL
		ORDER BY last_accessed DESC
		LIMIT 5
	`); err != nil {
		return nil, err
	}

	return stats, nil
}
