package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pulseboard/pulseboard/internal/api/middleware"
	"github.com/pulseboard/pulseboard/internal/api/response"
	"github.com/pulseboard/pulseboard/internal/profile"
)

type profileResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	CreatedAt  string `json:"createdAt"`
}

type profileEnvelope struct {
	Provisioned bool             `json:"provisioned"`
	Profile     *profileResponse `json:"profile"`
}

// ProfileHandler handles the profile endpoint.
type ProfileHandler struct {
	repo profile.Repository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(repo profile.Repository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// Get handles GET /api/profile. An absent profile is a valid state, not an
// error: provisioning runs in the background after sign-in and may not have
// completed yet.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	p, err := h.repo.GetByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.Success(w, http.StatusOK, profileEnvelope{Provisioned: false}, requestID)
			return
		}
		slog.Error("failed to load profile", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile", requestID)
		return
	}

	response.Success(w, http.StatusOK, profileEnvelope{
		Provisioned: true,
		Profile: &profileResponse{
			ID:         p.ID.String(),
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Email:      p.Email,
			Department: p.Department,
			Position:   p.Position,
			CreatedAt:  p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}, requestID)
}
