package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/catalog"
	"github.com/mooddy/playlist-service/internal/db"
	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/mooddy/playlist-service/internal/middleware"
	"github.com/mooddy/playlist-service/internal/models"
	"github.com/mooddy/playlist-service/internal/playlist"
	"github.com/mooddy/playlist-service/internal/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog serves canned metadata so handler tests never hit the network
type stubCatalog struct {
	err error
}

func (s *stubCatalog) Lookup(_ context.Context, trackID int64) (*catalog.TrackMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &catalog.TrackMetadata{
		TrackID:    trackID,
		TrackName:  fmt.Sprintf("Track %d", trackID),
		ArtistName: "Test Artist",
	}, nil
}

func (s *stubCatalog) Search(_ context.Context, term string, _ int) ([]catalog.TrackMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []catalog.TrackMetadata{
		{TrackID: 1, TrackName: term + " One", ArtistName: "Test Artist"},
	}, nil
}

func setupTestDB(t *testing.T) (*db.DB, *db.Repositories) {
	t.Helper()

	logger.Init("error", false)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(sqlDB, "file://../../migrations"))

	return database, db.NewRepositories(database)
}

// setupPlaylistTestRouter creates a test router with playlist routes
func setupPlaylistTestRouter(database *db.DB, repos *db.Repositories) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequesterIdentity())
	apiGroup := router.Group("/api")

	resolver := track.NewResolver(repos, &stubCatalog{})
	service := playlist.NewService(database, repos, resolver)
	SetupPlaylistRoutes(apiGroup, service)

	return router
}

func doRequest(router *gin.Engine, method, path string, body any, userID *uuid.UUID) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createUser(t *testing.T, repos *db.Repositories, nickname string) *models.User {
	t.Helper()

	user := models.NewUser(nickname+"@example.com", nickname)
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) playlist.View {
	t.Helper()

	var view playlist.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func TestCreatePlaylistEndpoint(t *testing.T) {
	database, repos := setupTestDB(t)
	router := setupPlaylistTestRouter(database, repos)
	owner := createUser(t, repos, "owner")

	t.Run("Anonymous request rejected", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{Title: "Mix"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed identity header rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/playlists", bytes.NewReader([]byte(`{"title":"Mix"}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "not-a-uuid")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing title rejected", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/playlists", map[string]any{}, &owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid visibility rejected", func(t *testing.T) {
		visibility := "FRIENDS_ONLY"
		w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{
			Title:      "Mix",
			Visibility: &visibility,
		}, &owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create succeeds", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{Title: "Mix"}, &owner.ID)

		require.Equal(t, http.StatusCreated, w.Code)
		view := decodeView(t, w)
		assert.Equal(t, "Mix", view.Title)
		assert.Equal(t, models.VisibilityPublic, view.Visibility)
		assert.Equal(t, owner.ID, view.OwnerID)
	})
}

func TestGetPlaylistEndpoint(t *testing.T) {
	database, repos := setupTestDB(t)
	router := setupPlaylistTestRouter(database, repos)
	owner := createUser(t, repos, "owner")
	stranger := createUser(t, repos, "stranger")

	visibility := "PRIVATE"
	w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{
		Title:      "Private Mix",
		Visibility: &visibility,
	}, &owner.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeView(t, w)

	t.Run("Owner can read", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/playlists/"+created.ID.String(), nil, &owner.ID)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Stranger denied", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/playlists/"+created.ID.String(), nil, &stranger.ID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Anonymous denied", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/playlists/"+created.ID.String(), nil, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown playlist is 404", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/playlists/"+uuid.NewString(), nil, &owner.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed id is 400", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/playlists/not-a-uuid", nil, &owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlaylistTrackEndpoints(t *testing.T) {
	database, repos := setupTestDB(t)
	router := setupPlaylistTestRouter(database, repos)
	owner := createUser(t, repos, "owner")

	w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{Title: "Mix"}, &owner.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeView(t, w)
	base := "/api/playlists/" + created.ID.String()

	t.Run("Add appends tracks in order", func(t *testing.T) {
		for _, externalID := range []int64{100, 200, 300} {
			w := doRequest(router, "POST", base+"/tracks", AddTrackRequest{ExternalTrackID: externalID}, &owner.ID)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := doRequest(router, "GET", base, nil, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		require.Len(t, view.Tracks, 3)
		for i, entry := range view.Tracks {
			assert.Equal(t, i, entry.Position)
		}
	})

	t.Run("Duplicate add is 409", func(t *testing.T) {
		w := doRequest(router, "POST", base+"/tracks", AddTrackRequest{ExternalTrackID: 100}, &owner.ID)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Move to head", func(t *testing.T) {
		w := doRequest(router, "GET", base, nil, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		last := view.Tracks[len(view.Tracks)-1]

		position := 0
		w = doRequest(router, "PATCH", base+"/tracks/"+last.TrackID.String()+"/position",
			MoveTrackRequest{Position: &position}, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		moved := decodeView(t, w)
		assert.Equal(t, last.TrackID, moved.Tracks[0].TrackID)
	})

	t.Run("Move out of range is 400", func(t *testing.T) {
		w := doRequest(router, "GET", base, nil, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)

		position := len(view.Tracks)
		w = doRequest(router, "PATCH", base+"/tracks/"+view.Tracks[0].TrackID.String()+"/position",
			MoveTrackRequest{Position: &position}, &owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Remove compacts positions", func(t *testing.T) {
		w := doRequest(router, "GET", base, nil, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		require.True(t, len(view.Tracks) >= 2)

		w = doRequest(router, "DELETE", base+"/tracks/"+view.Tracks[0].TrackID.String(), nil, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)
		after := decodeView(t, w)
		require.Len(t, after.Tracks, len(view.Tracks)-1)
		for i, entry := range after.Tracks {
			assert.Equal(t, i, entry.Position)
		}
	})

	t.Run("Remove unknown track is 404", func(t *testing.T) {
		w := doRequest(router, "DELETE", base+"/tracks/"+uuid.NewString(), nil, &owner.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateAndDeletePlaylistEndpoints(t *testing.T) {
	database, repos := setupTestDB(t)
	router := setupPlaylistTestRouter(database, repos)
	owner := createUser(t, repos, "owner")
	friend := createUser(t, repos, "friend")

	w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{Title: "Mix"}, &owner.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeView(t, w)
	base := "/api/playlists/" + created.ID.String()

	t.Run("Share with friend", func(t *testing.T) {
		visibility := "SHARED"
		shared := []string{friend.ID.String()}
		w := doRequest(router, "PATCH", base, UpdatePlaylistRequest{
			Visibility:    &visibility,
			SharedUserIDs: &shared,
		}, &owner.ID)

		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		assert.Equal(t, models.VisibilityShared, view.Visibility)
		assert.Equal(t, []uuid.UUID{friend.ID}, view.SharedUserIDs)
	})

	t.Run("Unknown share target is 404", func(t *testing.T) {
		shared := []string{uuid.NewString()}
		w := doRequest(router, "PATCH", base, UpdatePlaylistRequest{SharedUserIDs: &shared}, &owner.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Friend sees playlist but not share list", func(t *testing.T) {
		w := doRequest(router, "GET", base, nil, &friend.ID)
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeView(t, w)
		assert.Empty(t, view.SharedUserIDs)
	})

	t.Run("Friend cannot update", func(t *testing.T) {
		title := "Hijacked"
		w := doRequest(router, "PATCH", base, UpdatePlaylistRequest{Title: &title}, &friend.ID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Friend cannot delete", func(t *testing.T) {
		w := doRequest(router, "DELETE", base, nil, &friend.ID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Owner deletes", func(t *testing.T) {
		w := doRequest(router, "DELETE", base, nil, &owner.ID)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(router, "GET", base, nil, &owner.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListEndpoints(t *testing.T) {
	database, repos := setupTestDB(t)
	router := setupPlaylistTestRouter(database, repos)
	owner := createUser(t, repos, "owner")

	for _, visibility := range []string{"PUBLIC", "PRIVATE"} {
		v := visibility
		w := doRequest(router, "POST", "/api/playlists", CreatePlaylistRequest{
			Title:      v + " Mix",
			Visibility: &v,
		}, &owner.ID)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("Public listing excludes private playlists", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/playlists/public", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp PlaylistListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Playlists, 1)
		assert.Equal(t, "PUBLIC Mix", resp.Playlists[0].Title)
	})

	t.Run("Owner listing includes everything", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/users/"+owner.ID.String()+"/playlists", nil, &owner.ID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp PlaylistListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Playlists, 2)
	})

	t.Run("Anonymous listing sees only public", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/users/"+owner.ID.String()+"/playlists", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp PlaylistListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Playlists, 1)
	})
}
