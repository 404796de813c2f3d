package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEndpointRequiresAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/searches/", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/searches/", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSearchCreateEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "create@example.com", 5)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/searches/", token, `{"query":"  iphone 15  "}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var search models.Search
	decodeBody(t, resp, &search)
	assert.Equal(t, "iphone 15", search.Query, "query is trimmed")
	assert.Equal(t, models.SearchStatusPending, search.Status)
	assert.Equal(t, models.TimeRange7d, search.TimeRange, "time range defaults to 7d")
}

func TestSearchCreateValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "validate@example.com", 5)

	tests := []struct {
		name, body string
	}{
		{"empty query", `{"query":"   "}`},
		{"missing query", `{}`},
		{"bad time range", `{"query":"ok","time_range":"90d"}`},
		{"malformed json", `{"query":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/v1/searches/", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSearchCreateQuotaExceeded(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "quota@example.com", 0)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/searches/", token, `{"query":"tesla"}`)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

func TestSearchListEndpointValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "listval@example.com", 5)

	for _, path := range []string{
		"/api/v1/searches/?page=0",
		"/api/v1/searches/?page=abc",
		"/api/v1/searches/?page_size=0",
		"/api/v1/searches/?page_size=101",
		"/api/v1/searches/?status_filter=bogus",
	} {
		resp := doRequest(t, app, http.MethodGet, path, token, "")
		assert.Equalf(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/v1/searches/?page=1&page_size=100&status_filter=completed", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchGetEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUserWithToken(t, db, cfg, "get@example.com", 5)

	search := models.Search{UserID: user.ID, Query: "mine", Status: models.SearchStatusPending, TimeRange: models.TimeRange7d}
	require.NoError(t, db.Create(&search).Error)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/searches/"+search.ID.String(), token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/searches/"+uuid.NewString(), token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/searches/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchGetDoesNotLeakOwnership(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, aliceToken := createUserWithToken(t, db, cfg, "alice@example.com", 5)
	bob, _ := createUserWithToken(t, db, cfg, "bob@example.com", 5)

	search := models.Search{UserID: bob.ID, Query: "bob's", Status: models.SearchStatusPending, TimeRange: models.TimeRange7d}
	require.NoError(t, db.Create(&search).Error)

	// A foreign search and a nonexistent one return the same response
	foreign := doRequest(t, app, http.MethodGet, "/api/v1/searches/"+search.ID.String(), aliceToken, "")
	missing := doRequest(t, app, http.MethodGet, "/api/v1/searches/"+uuid.NewString(), aliceToken, "")

	assert.Equal(t, http.StatusNotFound, foreign.StatusCode)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	var foreignBody, missingBody map[string]any
	decodeBody(t, foreign, &foreignBody)
	decodeBody(t, missing, &missingBody)
	assert.Equal(t, missingBody, foreignBody)
}

func TestSavedSearchRoutesNotShadowedByID(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "routes@example.com", 5)

	// "saved" must hit the saved-search handlers, not parse as a search ID
	resp := doRequest(t, app, http.MethodGet, "/api/v1/searches/saved/all", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/searches/saved", token, `{"query":"watched"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSavedSearchDuplicateEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "dup@example.com", 5)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/searches/saved", token, `{"query":"tesla"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/searches/saved", token, `{"query":"tesla"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "This search is already saved", body["error"])
}

func TestSavedSearchUpdateAndDeleteEndpoints(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUserWithToken(t, db, cfg, "crud@example.com", 5)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/searches/saved", token, `{"query":"brand","alert_enabled":true,"alert_threshold":0.4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var saved models.SavedSearch
	decodeBody(t, resp, &saved)

	resp = doRequest(t, app, http.MethodPatch, "/api/v1/searches/saved/"+saved.ID.String(), token, `{"alert_enabled":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.SavedSearch
	decodeBody(t, resp, &updated)
	assert.False(t, updated.AlertEnabled)
	require.NotNil(t, updated.AlertThreshold)
	assert.Equal(t, 0.4, *updated.AlertThreshold)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/searches/saved/"+saved.ID.String(), token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/searches/saved/"+saved.ID.String(), token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchDeleteEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUserWithToken(t, db, cfg, "del@example.com", 5)

	search := models.Search{UserID: user.ID, Query: "doomed", Status: models.SearchStatusCompleted, TimeRange: models.TimeRange7d}
	require.NoError(t, db.Create(&search).Error)

	resp := doRequest(t, app, http.MethodDelete, "/api/v1/searches/"+search.ID.String(), token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body MessageResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/searches/"+search.ID.String(), token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchTweetsEndpoint(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, token := createUserWithToken(t, db, cfg, "tweets@example.com", 5)

	search := models.Search{UserID: user.ID, Query: "with tweets", Status: models.SearchStatusCompleted, TimeRange: models.TimeRange7d}
	require.NoError(t, db.Create(&search).Error)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Tweet{SearchID: search.ID, Text: fmt.Sprintf("tweet %d", i)}).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/v1/searches/"+search.ID.String()+"/tweets", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tweets []models.Tweet
	decodeBody(t, resp, &tweets)
	assert.Len(t, tweets, 3)
}
