package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a promotional discount code. Coupons are seeded out-of-band;
// the API only reads and edits them.
type Coupon struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	ExpiresAt   time.Time `json:"expiresAt" db:"expires_at"`
}
