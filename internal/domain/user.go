package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Every account starts as RoleUser; promotion happens through
// the admin endpoints.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents an account known to the platform. Accounts are created
// lazily on first sign-in, keyed by email.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photoURL" db:"photo_url"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
