package validation

import (
	"strings"

	"github.com/pulseboard/pulseboard/internal/feedback"
)

// SubmitFeedbackRequest mirrors the fields needed for submission validation.
type SubmitFeedbackRequest struct {
	Title       string
	Description string
	Type        string
	Priority    string
}

// ValidateSubmitFeedbackRequest validates the fields of a feedback
// submission. Title and description must be non-empty after trimming; type
// and priority may be empty (the service defaults them) but not invalid.
func ValidateSubmitFeedbackRequest(req SubmitFeedbackRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(req.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}
	if req.Type != "" && !feedback.Type(req.Type).Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "type must be one of positive, constructive, suggestion, concern"})
	}
	if req.Priority != "" && !feedback.Priority(req.Priority).Valid() {
		errs = append(errs, FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
	}

	return errs
}

// ValidateListFilter validates the feedback list filter query parameter.
// An empty filter means all.
func ValidateListFilter(filter string) []FieldError {
	if filter == "" {
		return nil
	}
	if !feedback.Filter(filter).Valid() {
		return []FieldError{{Field: "filter", Message: "filter must be one of all, pending, addressed, closed"}}
	}
	return nil
}
