package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pulseboard/pulseboard/internal/api/middleware"
	"github.com/pulseboard/pulseboard/internal/api/response"
	"github.com/pulseboard/pulseboard/internal/api/validation"
	"github.com/pulseboard/pulseboard/internal/feedback"
)

type submitFeedbackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
}

type feedbackItemResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Type             string  `json:"type"`
	Priority         string  `json:"priority"`
	Status           string  `json:"status"`
	UserID           string  `json:"userId"`
	CreatedAt        string  `json:"createdAt"`
	AuthorFirstName  *string `json:"authorFirstName,omitempty"`
	AuthorLastName   *string `json:"authorLastName,omitempty"`
	AuthorDepartment *string `json:"authorDepartment,omitempty"`
}

func toFeedbackItemResponse(it *feedback.Item) feedbackItemResponse {
	return feedbackItemResponse{
		ID:               it.ID.String(),
		Title:            it.Title,
		Description:      it.Description,
		Type:             string(it.Type),
		Priority:         string(it.Priority),
		Status:           string(it.Status),
		UserID:           it.UserID.String(),
		CreatedAt:        it.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		AuthorFirstName:  it.AuthorFirstName,
		AuthorLastName:   it.AuthorLastName,
		AuthorDepartment: it.AuthorDepartment,
	}
}

// FeedbackHandler handles the feedback endpoints.
type FeedbackHandler struct {
	svc  *feedback.Service
	repo feedback.Repository
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(svc *feedback.Service, repo feedback.Repository) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, repo: repo}
}

// List handles GET /api/feedback. Query parameters: filter (all, pending,
// addressed, closed; default all) and limit (default none).
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filterStr := r.URL.Query().Get("filter")
	if fieldErrors := validation.ValidateListFilter(filterStr); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}
	filter := feedback.Filter(filterStr)
	if filterStr == "" {
		filter = feedback.FilterAll
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			response.Err(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer", requestID)
			return
		}
		limit = n
	}

	items, err := h.repo.List(r.Context(), filter, limit)
	if err != nil {
		slog.Error("failed to list feedback", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load feedback", requestID)
		return
	}

	resp := make([]feedbackItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toFeedbackItemResponse(&items[i]))
	}

	response.SuccessList(w, http.StatusOK, resp, len(resp), requestID)
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req submitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateSubmitFeedbackRequest(validation.SubmitFeedbackRequest{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	item, err := h.svc.Submit(r.Context(), feedback.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        feedback.Type(req.Type),
		Priority:    feedback.Priority(req.Priority),
	}, identity.ID)
	if err != nil {
		h.writeSubmitError(w, err, requestID)
		return
	}

	response.Success(w, http.StatusCreated, toFeedbackItemResponse(item), requestID)
}

// writeSubmitError maps the submission failure taxonomy to user-facing
// messages, one per category.
func (h *FeedbackHandler) writeSubmitError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, feedback.ErrMissingFields):
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields", requestID)
	case errors.Is(err, feedback.ErrPermissionDenied):
		response.Err(w, http.StatusForbidden, "PERMISSION_DENIED", "Permission denied. Check access policies.", requestID)
	case errors.Is(err, feedback.ErrTableMissing):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Table not found. Please check database setup.", requestID)
	case errors.Is(err, feedback.ErrDuplicate):
		response.Err(w, http.StatusConflict, "DUPLICATE", "Duplicate entry. Please try again.", requestID)
	case errors.Is(err, feedback.ErrBackend):
		response.Err(w, http.StatusInternalServerError, "SUBMIT_FAILED", "Submission failed: "+err.Error(), requestID)
	default:
		slog.Error("feedback submission failed", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "UNKNOWN", "Failed to submit feedback. Please try again.", requestID)
	}
}
