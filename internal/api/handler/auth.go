package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pulseboard/pulseboard/internal/api/middleware"
	"github.com/pulseboard/pulseboard/internal/api/response"
	"github.com/pulseboard/pulseboard/internal/api/validation"
	"github.com/pulseboard/pulseboard/internal/auth"
)

type signUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type sessionResponse struct {
	User  identityResponse `json:"user"`
	Token string           `json:"token,omitempty"`
}

func toIdentityResponse(id *auth.Identity) identityResponse {
	return identityResponse{
		ID:       id.ID.String(),
		Email:    id.Email,
		Metadata: id.Metadata,
	}
}

// AuthHandler handles the authentication endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateSignUpRequest(validation.SignUpRequest{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		Position:   req.Position,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	metadata := map[string]string{
		"first_name": strings.TrimSpace(req.FirstName),
		"last_name":  strings.TrimSpace(req.LastName),
		"department": strings.TrimSpace(req.Department),
		"position":   strings.TrimSpace(req.Position),
	}

	identity, token, err := h.svc.SignUp(r.Context(), strings.TrimSpace(req.Email), req.Password, metadata)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			response.Err(w, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists", requestID)
		case errors.Is(err, auth.ErrWeakPassword):
			response.Err(w, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 6 characters", requestID)
		default:
			slog.Error("sign up failed", "error", err, "requestId", requestID)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account", requestID)
		}
		return
	}

	response.Success(w, http.StatusCreated, sessionResponse{
		User:  toIdentityResponse(identity),
		Token: token,
	}, requestID)
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateSignInRequest(validation.SignInRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	identity, token, err := h.svc.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", requestID)
			return
		}
		slog.Error("sign in failed", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign in", requestID)
		return
	}

	response.Success(w, http.StatusOK, sessionResponse{
		User:  toIdentityResponse(identity),
		Token: token,
	}, requestID)
}

// SignOut handles POST /api/auth/signout. Always succeeds from the caller's
// point of view; a failed session invalidation is logged inside the service.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.svc.SignOut(r.Context(), middleware.BearerToken(r))
	response.NoContent(w)
}

// Me handles GET /api/auth/me, returning the cached identity for the session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	response.Success(w, http.StatusOK, toIdentityResponse(identity), requestID)
}
