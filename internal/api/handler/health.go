package handler

import (
	"context"
	"net/http"

	"github.com/pulseboard/pulseboard/internal/api/middleware"
	"github.com/pulseboard/pulseboard/internal/api/response"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      Pinger
	redis   Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler. Either pinger may be nil when
// the corresponding store was not configured; health then reports degraded.
func NewHealthHandler(db, redis Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, version: version}
}

type storeStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string      `json:"status"`
	Version  string      `json:"version"`
	Database storeStatus `json:"database"`
	Redis    storeStatus `json:"redis"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	data := healthData{
		Status:   "healthy",
		Version:  h.version,
		Database: storeStatus{Connected: h.check(r.Context(), h.db)},
		Redis:    storeStatus{Connected: h.check(r.Context(), h.redis)},
	}
	if !data.Database.Connected || !data.Redis.Connected {
		data.Status = "degraded"
	}

	response.Success(w, http.StatusOK, data, requestID)
}

func (h *HealthHandler) check(ctx context.Context, p Pinger) bool {
	return p != nil && p.Ping(ctx) == nil
}
