package feedback

import "context"

// Repository provides operations on the feedback table.
type Repository interface {
	// List returns items newest first, joined with the submitter's profile.
	// limit <= 0 means no limit.
	List(ctx context.Context, filter Filter, limit int) ([]Item, error)
	// CountByStatus counts items matching status; nil counts everything.
	CountByStatus(ctx context.Context, status *Status) (int, error)
	Create(ctx context.Context, item *Item) error
}
