package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/api/handler"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

type healthBody struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database struct {
		Connected bool `json:"connected"`
	} `json:"database"`
	Redis struct {
		Connected bool `json:"connected"`
	} `json:"redis"`
}

func getHealth(t *testing.T, h *handler.HealthHandler) (int, healthBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var data healthBody
	decodeData(t, decodeEnvelope(t, rec), &data)
	return rec.Code, data
}

func TestHealth_AllConnected(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{}, stubPinger{}, "1.2.3")

	code, data := getHealth(t, h)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", data.Status)
	assert.Equal(t, "1.2.3", data.Version)
	assert.True(t, data.Database.Connected)
	assert.True(t, data.Redis.Connected)
}

func TestHealth_DegradedWhenStoreMissing(t *testing.T) {
	h := handler.NewHealthHandler(nil, stubPinger{}, "dev")

	code, data := getHealth(t, h)
	require.Equal(t, http.StatusOK, code, "degraded is still a 200; the body carries the detail")
	assert.Equal(t, "degraded", data.Status)
	assert.False(t, data.Database.Connected)
	assert.True(t, data.Redis.Connected)
}

func TestHealth_DegradedWhenPingFails(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{}, stubPinger{err: assert.AnError}, "dev")

	code, data := getHealth(t, h)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", data.Status)
	assert.True(t, data.Database.Connected)
	assert.False(t, data.Redis.Connected)
}
