package handlers

import (
	"net/http"
	"testing"

	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/gentleman654/VoxLens/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMeEndpoints(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUserWithToken(t, db, cfg, "me@example.com", 42)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me services.UserResponse
	decodeBody(t, resp, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "me@example.com", me.Email)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/users/me/credits", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var credits services.CreditsResponse
	decodeBody(t, resp, &credits)
	assert.Equal(t, 42, credits.CreditsRemaining)
}

func TestUserUpdateEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "patchme@example.com", 50)
	createUserWithToken(t, db, cfg, "taken@example.com", 50)

	resp := doRequest(t, app, http.MethodPatch, "/api/v1/users/me", token, `{"full_name":"Grace Hopper"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me services.UserResponse
	decodeBody(t, resp, &me)
	require.NotNil(t, me.FullName)
	assert.Equal(t, "Grace Hopper", *me.FullName)

	resp = doRequest(t, app, http.MethodPatch, "/api/v1/users/me", token, `{"email":"taken@example.com"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUserDeleteEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUserWithToken(t, db, cfg, "goodbye@example.com", 50)

	search := models.Search{UserID: user.ID, Query: "mine", Status: models.SearchStatusPending, TimeRange: models.TimeRange7d}
	require.NoError(t, db.Create(&search).Error)

	resp := doRequest(t, app, http.MethodDelete, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Search{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	// The token belongs to a deleted account now
	resp = doRequest(t, app, http.MethodGet, "/api/v1/users/me", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
