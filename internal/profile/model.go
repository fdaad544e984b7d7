package profile

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile represents a row in the users table. Its ID equals the owning
// account's ID: the primary key doubles as the foreign key to the identity.
type UserProfile struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Email      string
	Department string
	Position   string
	CreatedAt  time.Time
}
