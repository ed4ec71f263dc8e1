package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tech-gadget/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
)

// CouponRepository defines the interface for coupon data access. Coupons
// are seeded out-of-band; there is no create path through the API.
type CouponRepository interface {
	List(ctx context.Context) ([]*domain.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Coupon, error)
	Update(ctx context.Context, coupon *domain.Coupon) error
}

type couponRepository struct {
	db *sql.DB
}

// NewCouponRepository creates a new instance of CouponRepository
func NewCouponRepository(db *sql.DB) CouponRepository {
	return &couponRepository{db: db}
}

// List retrieves all coupons
func (r *couponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	query := `
		SELECT id, code, amount, description, expires_at
		FROM coupons
		ORDER BY expires_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []*domain.Coupon{}
	for rows.Next() {
		coupon := &domain.Coupon{}
		err := rows.Scan(
			&coupon.ID,
			&coupon.Code,
			&coupon.Amount,
			&coupon.Description,
			&coupon.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// FindByID retrieves a single coupon
func (r *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Coupon, error) {
	query := `
		SELECT id, code, amount, description, expires_at
		FROM coupons
		WHERE id = $1
	`

	coupon := &domain.Coupon{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Amount,
		&coupon.Description,
		&coupon.ExpiresAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon by ID: %w", err)
	}

	return coupon, nil
}

// Update edits a coupon in place
func (r *couponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, amount = $3, description = $4, expires_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		coupon.ID,
		coupon.Code,
		coupon.Amount,
		coupon.Description,
		coupon.ExpiresAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCouponNotFound
	}

	return nil
}
