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

type profileData struct {
	Provisioned bool `json:"provisioned"`
	Profile     *struct {
		ID         string `json:"id"`
		FirstName  string `json:"firstName"`
		Department string `json:"department"`
	} `json:"profile"`
}

func TestGetProfile_Provisioned(t *testing.T) {
	repo := newFakeProfileRepo()
	identity := testIdentity()
	require.NoError(t, repo.Create(context.Background(), profileFor(identity.ID)))

	h := handler.NewProfileHandler(repo)
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	protect(h.Get, &stubResolver{identity: identity}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var data profileData
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.True(t, data.Provisioned)
	require.NotNil(t, data.Profile)
	assert.Equal(t, identity.ID.String(), data.Profile.ID)
	assert.Equal(t, "Ada", data.Profile.FirstName)
	assert.Equal(t, "Engineering", data.Profile.Department)
}

func TestGetProfile_NotYetProvisioned(t *testing.T) {
	// Provisioning runs in the background after sign-in; a missing row is a
	// valid state, not a 404.
	h := handler.NewProfileHandler(newFakeProfileRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	protect(h.Get, &stubResolver{identity: testIdentity()}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var data profileData
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.False(t, data.Provisioned)
	assert.Nil(t, data.Profile)
}

func TestGetProfile_RepoFailure(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.getErr = assert.AnError
	h := handler.NewProfileHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	protect(h.Get, &stubResolver{identity: testIdentity()}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	h := handler.NewProfileHandler(newFakeProfileRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	protect(h.Get, &stubResolver{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
