package service

import (
	"context"
	"testing"

	"tech-gadget/internal/domain"

	"github.com/google/uuid"
)

type mockReviewRepository struct {
	reviews []*domain.Review
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	matched := []*domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func TestPost_StampsIdentityAndTimestamp(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := NewReviewService(repo)

	review, err := svc.Post(context.Background(), &domain.Review{
		ProductID:     uuid.New(),
		ReviewerEmail: "fan@x.com",
		Content:       "Great gadget",
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if review.ID == uuid.Nil {
		t.Error("expected the service to assign a review id")
	}
	if review.CreatedAt.IsZero() {
		t.Error("expected the service to stamp the creation time")
	}
	if len(repo.reviews) != 1 {
		t.Fatalf("expected one stored review, got %d", len(repo.reviews))
	}
}
