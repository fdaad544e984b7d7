package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/api/response"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, http.StatusOK, map[string]string{"hello": "world"}, "req-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env struct {
		Data  map[string]string `json:"data"`
		Error *response.Error   `json:"error"`
		Meta  response.Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "world", env.Data["hello"])
	assert.Nil(t, env.Error)
	assert.Equal(t, "req-1", env.Meta.RequestID)

	_, err := time.Parse(time.RFC3339, env.Meta.Timestamp)
	assert.NoError(t, err)
}

func TestSuccessList_CarriesTotal(t *testing.T) {
	rec := httptest.NewRecorder()
	response.SuccessList(rec, http.StatusOK, []int{1, 2, 3}, 3, "req-1")

	var env struct {
		Data []int `json:"data"`
		Meta struct {
			RequestID string `json:"requestId"`
			Total     int    `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, []int{1, 2, 3}, env.Data)
	assert.Equal(t, 3, env.Meta.Total)
}

func TestErr(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Err(rec, http.StatusNotFound, "NOT_FOUND", "gone", "req-1")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env struct {
		Data  any             `json:"data"`
		Error *response.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "gone", env.Error.Message)
}

func TestErrWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	details := []map[string]string{{"field": "title", "message": "title is required"}}
	response.ErrWithDetails(rec, http.StatusBadRequest, "VALIDATION_ERROR", "invalid", details, "req-1")

	var env struct {
		Error *struct {
			Code    string            `json:"code"`
			Details []map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "title", env.Error.Details[0]["field"])
}

func TestNewMeta_GeneratesRequestID(t *testing.T) {
	meta := response.NewMeta("")
	assert.NotEmpty(t, meta.RequestID)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
