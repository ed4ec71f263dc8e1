package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product classification set by moderators. A product has at most one type
// at a time; "none" is the default.
const (
	TypeNone     = "none"
	TypeFeatured = "featured"
	TypeTrending = "trending"
)

// Product report status. Reporting is orthogonal to the type classification.
const (
	StatusNormal   = "normal"
	StatusReported = "reported"
)

// Product is an accepted catalog entry. Products only come into existence
// when a moderator accepts a submission; the copy happens inside a single
// transaction so a submission and its product never coexist.
type Product struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OwnerEmail string    `json:"ownerEmail" db:"owner_email"`
	Name       string    `json:"name" db:"name"`
	Link       string    `json:"link" db:"link"`
	Tag        string    `json:"tag" db:"tag"`
	Details    string    `json:"details" db:"details"`
	ImageURL   string    `json:"image" db:"image_url"`
	Type       string    `json:"type" db:"type"`
	Votes      int       `json:"vote" db:"votes"`
	DownVotes  int       `json:"downVote" db:"down_votes"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Submission is a product waiting in the moderation queue. It carries the
// same payload as a Product minus the moderator-controlled fields.
type Submission struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OwnerEmail string    `json:"ownerEmail" db:"owner_email"`
	Name       string    `json:"name" db:"name"`
	Link       string    `json:"link" db:"link"`
	Tag        string    `json:"tag" db:"tag"`
	Details    string    `json:"details" db:"details"`
	ImageURL   string    `json:"image" db:"image_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
