package service

import (
	"context"
	"time"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/repository"

	"github.com/google/uuid"
)

// ProductService covers the product lifecycle: submission, moderation,
// the published catalog, votes and reports.
type ProductService interface {
	// Submission queue
	Submit(ctx context.Context, submission *domain.Submission) (*domain.Submission, error)
	Queue(ctx context.Context) ([]*domain.Submission, error)
	QueueItem(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	Reject(ctx context.Context, id uuid.UUID) error
	Accept(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// Catalog
	Catalog(ctx context.Context, search string, page, size int) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ByType(ctx context.Context, productType string) ([]*domain.Product, error)
	SetType(ctx context.Context, id uuid.UUID, productType string) error

	// Votes and reports
	SetVotes(ctx context.Context, id uuid.UUID, votes int) error
	SetDownVotes(ctx context.Context, id uuid.UUID, downVotes int) error
	Report(ctx context.Context, id uuid.UUID) error
	Reported(ctx context.Context) ([]*domain.Product, error)

	// Owner operations
	OwnerProducts(ctx context.Context, email string) ([]*domain.Product, error)
	UpdateOwned(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID, ownerEmail string) error
}

type productService struct {
	products    repository.ProductRepository
	submissions repository.SubmissionRepository
}

// NewProductService creates a new instance of ProductService.
func NewProductService(products repository.ProductRepository, submissions repository.SubmissionRepository) ProductService {
	return &productService{products: products, submissions: submissions}
}

// Submit places a product in the moderation queue.
func (s *productService) Submit(ctx context.Context, submission *domain.Submission) (*domain.Submission, error) {
	submission.ID = uuid.New()
	submission.CreatedAt = time.Now()

	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// Queue lists all pending submissions.
func (s *productService) Queue(ctx context.Context) ([]*domain.Submission, error) {
	return s.submissions.List(ctx)
}

// QueueItem fetches a single pending submission.
func (s *productService) QueueItem(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return s.submissions.FindByID(ctx, id)
}

// Reject removes a submission from the queue without a trace.
func (s *productService) Reject(ctx context.Context, id uuid.UUID) error {
	return s.submissions.Delete(ctx, id)
}

// Accept atomically moves a submission into the catalog.
func (s *productService) Accept(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.submissions.Accept(ctx, id)
}

// Catalog returns one page of the published catalog.
func (s *productService) Catalog(ctx context.Context, search string, page, size int) ([]*domain.Product, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	return s.products.List(ctx, search, page, size)
}

// Count returns the total catalog size.
func (s *productService) Count(ctx context.Context) (int, error) {
	return s.products.Count(ctx)
}

// Get fetches one catalog product.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ByType returns the featured or trending listings.
func (s *productService) ByType(ctx context.Context, productType string) ([]*domain.Product, error) {
	return s.products.ListByType(ctx, productType)
}

// SetType applies a moderator classification.
func (s *productService) SetType(ctx context.Context, id uuid.UUID, productType string) error {
	return s.products.SetType(ctx, id, productType)
}

// SetVotes overwrites the vote counter with the caller-supplied value.
// The counter is not an increment; concurrent voters clobber each other.
// Kept for behavior parity with the site and documented as a weakness.
func (s *productService) SetVotes(ctx context.Context, id uuid.UUID, votes int) error {
	return s.products.SetVotes(ctx, id, votes)
}

// SetDownVotes overwrites the down-vote counter.
func (s *productService) SetDownVotes(ctx context.Context, id uuid.UUID, downVotes int) error {
	return s.products.SetDownVotes(ctx, id, downVotes)
}

// Report flags a product for moderator review.
func (s *productService) Report(ctx context.Context, id uuid.UUID) error {
	return s.products.SetStatus(ctx, id, domain.StatusReported)
}

// Reported lists flagged products for the moderator dashboard.
func (s *productService) Reported(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListReported(ctx)
}

// OwnerProducts lists one user's published products.
func (s *productService) OwnerProducts(ctx context.Context, email string) ([]*domain.Product, error) {
	return s.products.ListByOwner(ctx, email)
}

// UpdateOwned edits a product's fields, constrained to its owner.
func (s *productService) UpdateOwned(ctx context.Context, product *domain.Product) error {
	return s.products.UpdateOwned(ctx, product)
}

// Delete removes a product from the catalog, constrained to its owner.
func (s *productService) Delete(ctx context.Context, id uuid.UUID, ownerEmail string) error {
	return s.products.DeleteOwned(ctx, id, ownerEmail)
}
