package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Submission failure taxonomy, in classification order. Each maps to a
// distinct user-facing message at the API layer.
var (
	// ErrMissingFields is a client-side validation failure; no insert was attempted.
	ErrMissingFields = errors.New("title and description are required")
	// ErrPermissionDenied is an access-control rejection from the database.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrTableMissing means the feedback table is absent or misconfigured.
	ErrTableMissing = errors.New("feedback table missing")
	// ErrDuplicate is a uniqueness conflict.
	ErrDuplicate = errors.New("duplicate feedback entry")
	// ErrBackend wraps any other structured database failure; its message is
	// passed through to the user.
	ErrBackend = errors.New("backend error")
)

// SubmitInput carries the user-supplied fields of a new feedback item.
type SubmitInput struct {
	Title       string
	Description string
	Type        Type
	Priority    Priority
}

// Service validates and submits feedback items.
type Service struct {
	repo Repository
}

// NewService creates a new feedback Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit validates the input, forces status to pending, stamps the creation
// time and inserts the item. Validation failures never reach the database.
func (s *Service) Submit(ctx context.Context, in SubmitInput, authorID uuid.UUID) (*Item, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, ErrMissingFields
	}

	typ := in.Type
	if typ == "" {
		typ = TypeSuggestion
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	item := &Item{
		Title:       title,
		Description: description,
		Type:        typ,
		Priority:    priority,
		Status:      StatusPending,
		UserID:      authorID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, classifySubmitError(err)
	}

	return item, nil
}

// classifySubmitError maps a database failure onto the submission taxonomy by
// inspecting the Postgres error code, falling through to a generic
// message-passthrough and finally to the raw error when no structured error
// is available.
func classifySubmitError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501":
			return ErrPermissionDenied
		case "42P01":
			return ErrTableMissing
		case "23505":
			return ErrDuplicate
		}
		return fmt.Errorf("%w: %s", ErrBackend, pgErr.Message)
	}
	return err
}
