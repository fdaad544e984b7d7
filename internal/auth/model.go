package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a row in the accounts table (the identity store).
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Metadata     map[string]string
	CreatedAt    time.Time
}

// Identity is the authenticated principal exposed to the rest of the
// application: a read-only view of an account, held for the duration of a
// session. Metadata carries the profile fields supplied at sign-up
// (first_name, last_name, department, position).
type Identity struct {
	ID       uuid.UUID
	Email    string
	Metadata map[string]string
}

func identityFromAccount(a *Account) *Identity {
	return &Identity{
		ID:       a.ID,
		Email:    a.Email,
		Metadata: a.Metadata,
	}
}
