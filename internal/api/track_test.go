package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mooddy/playlist-service/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTrackTestRouter(client catalog.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupTrackRoutes(router.Group("/api"), client)
	return router
}

func TestTrackSearchEndpoint(t *testing.T) {
	router := setupTrackTestRouter(&stubCatalog{})

	t.Run("Missing term rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tracks/search", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Blank term rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tracks/search?term=%20%20", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Oversized term rejected", func(t *testing.T) {
		term := strings.Repeat("a", 201)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tracks/search?term="+term, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Search returns results", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tracks/search?term=queen&limit=5", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp TrackSearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "queen One", resp.Results[0].TrackName)
	})
}

func TestTrackSearchEndpoint_UpstreamFailure(t *testing.T) {
	router := setupTrackTestRouter(&stubCatalog{err: catalog.ErrUpstream})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tracks/search?term=queen", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
