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
	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmissionRepository defines the interface for the moderation queue
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	List(ctx context.Context) ([]*domain.Submission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Accept(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository
func NewSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create inserts a submission into the moderation queue
func (r *submissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, owner_email, name, link, tag, details, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.OwnerEmail,
		submission.Name,
		submission.Link,
		submission.Tag,
		submission.Details,
		submission.ImageURL,
		submission.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// List returns the whole queue in submission order
func (r *submissionRepository) List(ctx context.Context) ([]*domain.Submission, error) {
	query := `
		SELECT id, owner_email, name, link, tag, details, image_url, created_at
		FROM submissions
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*domain.Submission{}
	for rows.Next() {
		submission := &domain.Submission{}
		err := rows.Scan(
			&submission.ID,
			&submission.OwnerEmail,
			&submission.Name,
			&submission.Link,
			&submission.Tag,
			&submission.Details,
			&submission.ImageURL,
			&submission.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}

// FindByID retrieves a single queue entry
func (r *submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, owner_email, name, link, tag, details, image_url, created_at
		FROM submissions
		WHERE id = $1
	`

	submission := &domain.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.OwnerEmail,
		&submission.Name,
		&submission.Link,
		&submission.Tag,
		&submission.Details,
		&submission.ImageURL,
		&submission.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission by ID: %w", err)
	}

	return submission, nil
}

// Delete removes a queue entry (moderator rejection, no trace kept)
func (r *submissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

// Accept moves a queue entry into the product catalog inside a single
// transaction. The delete and the insert commit together, so a submission
// and its catalog product never coexist and a crash cannot duplicate the
// item.
func (r *submissionRepository) Accept(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin accept transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, owner_email, name, link, tag, details, image_url, created_at
		FROM submissions
		WHERE id = $1
		FOR UPDATE
	`

	submission := &domain.Submission{}
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.OwnerEmail,
		&submission.Name,
		&submission.Link,
		&submission.Tag,
		&submission.Details,
		&submission.ImageURL,
		&submission.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to lock submission: %w", err)
	}

	product := &domain.Product{
		ID:         submission.ID,
		OwnerEmail: submission.OwnerEmail,
		Name:       submission.Name,
		Link:       submission.Link,
		Tag:        submission.Tag,
		Details:    submission.Details,
		ImageURL:   submission.ImageURL,
		Type:       domain.TypeNone,
		Status:     domain.StatusNormal,
		CreatedAt:  submission.CreatedAt,
	}

	insertQuery := `
		INSERT INTO products (id, owner_email, name, link, tag, details, image_url, type, votes, down_votes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.ExecContext(
		ctx,
		insertQuery,
		product.ID,
		product.OwnerEmail,
		product.Name,
		product.Link,
		product.Tag,
		product.Details,
		product.ImageURL,
		product.Type,
		product.Votes,
		product.DownVotes,
		product.Status,
		product.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert accepted product: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to remove accepted submission: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit accept transaction: %w", err)
	}

	return product, nil
}
