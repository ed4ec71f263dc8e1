package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats holds the aggregate counts shown on the site dashboard.
type Stats struct {
	Products int `json:"products"`
	Users    int `json:"users"`
	Reviews  int `json:"reviews"`
	Payments int `json:"payments"`
}

// StatsRepository aggregates counts across the store in one query.
type StatsRepository interface {
	Counts(ctx context.Context) (*Stats, error)
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new instance of StatsRepository
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Counts returns the aggregate counts in a single round trip. The counts
// are not required to be transactionally consistent with each other.
func (r *statsRepository) Counts(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM payments)
	`

	stats := &Stats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Products,
		&stats.Users,
		&stats.Reviews,
		&stats.Payments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	return stats, nil
}
