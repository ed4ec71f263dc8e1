package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is an immutable free-form review attached to a product. The
// product reference is intentionally unconstrained: reviews survive
// product deletion, matching the permissive data model of the site.
type Review struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ProductID     uuid.UUID `json:"productId" db:"product_id"`
	ReviewerEmail string    `json:"reviewerEmail" db:"reviewer_email"`
	ReviewerName  string    `json:"reviewerName" db:"reviewer_name"`
	Content       string    `json:"content" db:"content"`
	Rating        int       `json:"rating" db:"rating"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
