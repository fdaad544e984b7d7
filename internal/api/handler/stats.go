package handler

import (
	"log/slog"
	"net/http"

	"github.com/pulseboard/pulseboard/internal/api/middleware"
	"github.com/pulseboard/pulseboard/internal/api/response"
	"github.com/pulseboard/pulseboard/internal/feedback"
)

const recentFeedbackLimit = 5

type dashboardResponse struct {
	Total     int                    `json:"total"`
	Pending   int                    `json:"pending"`
	Addressed int                    `json:"addressed"`
	Closed    int                    `json:"closed"`
	Recent    []feedbackItemResponse `json:"recent"`
}

type adminStatsResponse struct {
	TotalUsers      int `json:"totalUsers"`
	TotalFeedback   int `json:"totalFeedback"`
	PendingFeedback int `json:"pendingFeedback"`
}

// StatsHandler handles the aggregate statistics endpoints.
type StatsHandler struct {
	stats *feedback.StatsService
	repo  feedback.Repository
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *feedback.StatsService, repo feedback.Repository) *StatsHandler {
	return &StatsHandler{stats: stats, repo: repo}
}

// Dashboard handles GET /api/stats/dashboard: the per-status counts plus the
// newest submissions. Counts are fetched fresh every call; any failure fails
// the whole fetch so the caller never renders partial numbers.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		slog.Error("failed to fetch dashboard stats", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard data", requestID)
		return
	}

	recent, err := h.repo.List(r.Context(), feedback.FilterAll, recentFeedbackLimit)
	if err != nil {
		slog.Error("failed to fetch recent feedback", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard data", requestID)
		return
	}

	resp := dashboardResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Addressed: stats.Addressed,
		Closed:    stats.Closed,
		Recent:    make([]feedbackItemResponse, 0, len(recent)),
	}
	for i := range recent {
		resp.Recent = append(resp.Recent, toFeedbackItemResponse(&recent[i]))
	}

	response.Success(w, http.StatusOK, resp, requestID)
}

// Admin handles GET /api/stats/admin: organization-wide counts.
func (h *StatsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.stats.Admin(r.Context())
	if err != nil {
		slog.Error("failed to fetch admin stats", "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load admin statistics", requestID)
		return
	}

	response.Success(w, http.StatusOK, adminStatsResponse{
		TotalUsers:      stats.TotalUsers,
		TotalFeedback:   stats.TotalFeedback,
		PendingFeedback: stats.PendingFeedback,
	}, requestID)
}
