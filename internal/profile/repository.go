package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is the distinguished not-found signal the provisioner
// keys its insert decision on.
var ErrProfileNotFound = errors.New("user profile not found")

// ErrProfileExists is returned when an insert loses the check-then-insert
// race to a concurrent provisioning attempt.
var ErrProfileExists = errors.New("user profile already exists")

// Repository provides operations on the users table.
type Repository interface {
	Create(ctx context.Context, p *UserProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	CountAll(ctx context.Context) (int, error)
}
