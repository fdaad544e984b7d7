package feedback

import (
	"time"

	"github.com/google/uuid"
)

// Type categorizes a feedback item.
type Type string

const (
	TypePositive     Type = "positive"
	TypeConstructive Type = "constructive"
	TypeSuggestion   Type = "suggestion"
	TypeConcern      Type = "concern"
)

// Valid reports whether t is one of the defined feedback types.
func (t Type) Valid() bool {
	switch t {
	case TypePositive, TypeConstructive, TypeSuggestion, TypeConcern:
		return true
	}
	return false
}

// Priority is the submitter-assigned urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the review lifecycle state. New items always start pending.
// StatusInReview is a valid stored value but has no list filter; the review
// workflow that would move items through it lives outside this service.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInReview  Status = "in_review"
	StatusAddressed Status = "addressed"
	StatusClosed    Status = "closed"
)

// Statuses lists every defined status value.
func Statuses() []Status {
	return []Status{StatusPending, StatusInReview, StatusAddressed, StatusClosed}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusAddressed, StatusClosed:
		return true
	}
	return false
}

// Filter selects which items a listing returns. in_review is deliberately not
// a filter option.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterAddressed Filter = "addressed"
	FilterClosed    Filter = "closed"
)

// Valid reports whether f is an accepted list filter.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterAddressed, FilterClosed:
		return true
	}
	return false
}

// Item represents a row in the feedback table. The Author fields are filled
// by list queries joining the submitter's profile; they stay nil when the
// profile row has not been provisioned yet.
type Item struct {
	ID          uuid.UUID
	Title       string
	Description string
	Type        Type
	Priority    Priority
	Status      Status
	UserID      uuid.UUID
	CreatedAt   time.Time

	AuthorFirstName  *string
	AuthorLastName   *string
	AuthorDepartment *string
}
