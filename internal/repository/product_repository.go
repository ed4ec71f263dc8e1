package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tech-gadget/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `id, owner_email, name, link, tag, details, image_url, type, votes, down_votes, status, created_at`

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, search string, page, size int) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
	ListByType(ctx context.Context, productType string) ([]*domain.Product, error)
	ListReported(ctx context.Context) ([]*domain.Product, error)
	ListByOwner(ctx context.Context, email string) ([]*domain.Product, error)
	SetType(ctx context.Context, id uuid.UUID, productType string) error
	SetVotes(ctx context.Context, id uuid.UUID, votes int) error
	SetDownVotes(ctx context.Context, id uuid.UUID, downVotes int) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateOwned(ctx context.Context, product *domain.Product) error
	DeleteOwned(ctx context.Context, id uuid.UUID, ownerEmail string) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// escapeLikePattern neutralizes LIKE metacharacters so a search term is
// matched literally. Without it "a_c" would match the tag "abc".
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.OwnerEmail,
		&product.Name,
		&product.Link,
		&product.Tag,
		&product.Details,
		&product.ImageURL,
		&product.Type,
		&product.Votes,
		&product.DownVotes,
		&product.Status,
		&product.CreatedAt,
	)
	return product, err
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List returns one page of the catalog, optionally filtered by a
// case-insensitive substring match on the tag field. The offset is
// page*size and rows come back in insertion order.
func (r *productRepository) List(ctx context.Context, search string, page, size int) ([]*domain.Product, error) {
	args := []interface{}{}
	whereClause := ""

	if strings.TrimSpace(search) != "" {
		whereClause = "WHERE tag ILIKE $1"
		args = append(args, "%"+escapeLikePattern(search)+"%")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY created_at, id
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, len(args)+1, len(args)+2)

	args = append(args, size, page*size)

	return r.queryProducts(ctx, query, args...)
}

// Count returns the total catalog size
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ListByType returns all products with the given type, unpaginated
func (r *productRepository) ListByType(ctx context.Context, productType string) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE type = $1
		ORDER BY created_at, id
	`, productColumns)

	return r.queryProducts(ctx, query, productType)
}

// ListReported returns all flagged products
func (r *productRepository) ListReported(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE status = $1
		ORDER BY created_at, id
	`, productColumns)

	return r.queryProducts(ctx, query, domain.StatusReported)
}

// ListByOwner returns the products submitted by one user
func (r *productRepository) ListByOwner(ctx context.Context, email string) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE owner_email = $1
		ORDER BY created_at, id
	`, productColumns)

	return r.queryProducts(ctx, query, email)
}

// SetType updates the moderator classification of a product
func (r *productRepository) SetType(ctx context.Context, id uuid.UUID, productType string) error {
	return r.updateField(ctx, `UPDATE products SET type = $2 WHERE id = $1`, id, productType)
}

// SetVotes overwrites the vote counter with a caller-supplied value.
// There is no increment and no concurrency control here on purpose; see
// the project notes on known weaknesses.
func (r *productRepository) SetVotes(ctx context.Context, id uuid.UUID, votes int) error {
	return r.updateField(ctx, `UPDATE products SET votes = $2 WHERE id = $1`, id, votes)
}

// SetDownVotes overwrites the down-vote counter with a caller-supplied value.
func (r *productRepository) SetDownVotes(ctx context.Context, id uuid.UUID, downVotes int) error {
	return r.updateField(ctx, `UPDATE products SET down_votes = $2 WHERE id = $1`, id, downVotes)
}

// SetStatus updates the report status of a product
func (r *productRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateField(ctx, `UPDATE products SET status = $2 WHERE id = $1`, id, status)
}

// UpdateOwned updates the editable fields of a product, constrained to its
// owner. A non-owner caller gets ErrProductNotFound rather than a hint
// that the id exists.
func (r *productRepository) UpdateOwned(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $3, link = $4, tag = $5, details = $6, image_url = $7
		WHERE id = $1 AND owner_email = $2
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.OwnerEmail,
		product.Name,
		product.Link,
		product.Tag,
		product.Details,
		product.ImageURL,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteOwned removes a product, constrained to its owner like
// UpdateOwned. A non-owner caller gets ErrProductNotFound rather than a
// hint that the id exists.
func (r *productRepository) DeleteOwned(ctx context.Context, id uuid.UUID, ownerEmail string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND owner_email = $2`, id, ownerEmail)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) updateField(ctx context.Context, query string, id uuid.UUID, value interface{}) error {
	result, err := r.db.ExecContext(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
