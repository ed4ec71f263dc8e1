package service

import (
	"context"
	"time"

	"tech-gadget/internal/domain"
	"tech-gadget/internal/repository"

	"github.com/google/uuid"
)

// ReviewService manages product reviews. Reviews are immutable once
// posted, so the surface is post and list only.
type ReviewService interface {
	Post(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(reviews repository.ReviewRepository) ReviewService {
	return &reviewService{reviews: reviews}
}

// Post stores a review, assigning its identity and timestamp.
func (s *reviewService) Post(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}
