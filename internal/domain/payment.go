package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Payment is an append-only ledger row recorded after the client reports a
// successful charge. The server does not verify the charge against the
// processor before inserting; see the project notes on known gaps.
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Email         string          `json:"email" db:"email"`
	AmountCents   int64           `json:"amountCents" db:"amount_cents"`
	TransactionID string          `json:"transactionId" db:"transaction_id"`
	Raw           json.RawMessage `json:"raw,omitempty" db:"raw"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
