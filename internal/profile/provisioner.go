package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pulseboard/pulseboard/internal/auth"
)

// Defaults for profile fields missing from the sign-up metadata.
const (
	DefaultFirstName  = "User"
	DefaultDepartment = "General"
	DefaultPosition   = "Employee"
)

// Provisioner lazily creates the user profile row for an authenticated
// identity. It runs as a background side effect of sign-in and must never
// block or fail authentication.
type Provisioner struct {
	repo Repository
}

// NewProvisioner creates a Provisioner over the given repository.
func NewProvisioner(repo Repository) *Provisioner {
	return &Provisioner{repo: repo}
}

// Ensure guarantees a profile row exists for the identity. An existing row is
// a no-op. Only the distinguished not-found signal triggers an insert; a
// conflict on that insert means a concurrent attempt won the race and is
// treated as success.
func (p *Provisioner) Ensure(ctx context.Context, identity *auth.Identity) error {
	if identity == nil {
		return nil
	}

	_, err := p.repo.GetByID(ctx, identity.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return fmt.Errorf("checking profile: %w", err)
	}

	prof := FromIdentity(identity)
	if err := p.repo.Create(ctx, prof); err != nil {
		if errors.Is(err, ErrProfileExists) {
			return nil
		}
		return fmt.Errorf("creating profile: %w", err)
	}

	return nil
}

// Provision is the fire-and-forget entry point used after sign-in. Failures
// are logged and swallowed; the profile stays absent until the next
// successful attempt.
func (p *Provisioner) Provision(ctx context.Context, identity *auth.Identity) {
	if err := p.Ensure(ctx, identity); err != nil {
		slog.Error("profile provisioning failed", "error", err, "accountId", identity.ID)
	}
}

// FromIdentity builds a profile from sign-up metadata, defaulting missing fields.
func FromIdentity(identity *auth.Identity) *UserProfile {
	return &UserProfile{
		ID:         identity.ID,
		FirstName:  metaOr(identity.Metadata, "first_name", DefaultFirstName),
		LastName:   metaOr(identity.Metadata, "last_name", ""),
		Email:      identity.Email,
		Department: metaOr(identity.Metadata, "department", DefaultDepartment),
		Position:   metaOr(identity.Metadata, "position", DefaultPosition),
	}
}

func metaOr(m map[string]string, key, fallback string) string {
	if m != nil && m[key] != "" {
		return m[key]
	}
	return fallback
}
