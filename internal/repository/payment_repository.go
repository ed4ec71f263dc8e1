package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tech-gadget/internal/domain"
)

// PaymentRepository defines the interface for the payment ledger.
// The ledger is append-only.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	List(ctx context.Context, email string) ([]*domain.Payment, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create appends a payment record to the ledger
func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, email, amount_cents, transaction_id, raw, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		payment.ID,
		payment.Email,
		payment.AmountCents,
		payment.TransactionID,
		payment.Raw,
		payment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// List retrieves payments, optionally filtered by email, newest last
func (r *paymentRepository) List(ctx context.Context, email string) ([]*domain.Payment, error) {
	query := `
		SELECT id, email, amount_cents, transaction_id, raw, created_at
		FROM payments
	`
	args := []interface{}{}

	if email != "" {
		query += ` WHERE email = $1`
		args = append(args, email)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []*domain.Payment{}
	for rows.Next() {
		payment := &domain.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.Email,
			&payment.AmountCents,
			&payment.TransactionID,
			&payment.Raw,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}
