package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/middleware"
	"github.com/mooddy/playlist-service/internal/models"
	"github.com/mooddy/playlist-service/internal/playlist"
	"github.com/mooddy/playlist-service/internal/track"
)

// Request DTOs

// CreatePlaylistRequest represents a request to create a new playlist
type CreatePlaylistRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   *string  `json:"description,omitempty"`
	CoverImageURL *string  `json:"cover_image_url,omitempty"`
	Visibility    *string  `json:"visibility,omitempty"`
	SharedUserIDs []string `json:"shared_user_ids,omitempty"`
}

// UpdatePlaylistRequest represents a partial playlist update. A missing
// shared_user_ids field leaves the share set untouched; an empty list
// clears it.
type UpdatePlaylistRequest struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	Visibility    *string   `json:"visibility,omitempty"`
	SharedUserIDs *[]string `json:"shared_user_ids,omitempty"`
}

// AddTrackRequest represents a request to append a catalog track
type AddTrackRequest struct {
	ExternalTrackID int64 `json:"external_track_id" binding:"required"`
}

// MoveTrackRequest represents a request to move a track to a new position
type MoveTrackRequest struct {
	Position *int `json:"position" binding:"required"`
}

// PlaylistListResponse represents a list of playlist views
type PlaylistListResponse struct {
	Playlists []*playlist.View `json:"playlists"`
}

// PlaylistHandler handles playlist-related API requests
type PlaylistHandler struct {
	service *playlist.Service
}

// NewPlaylistHandler creates a new playlist handler instance
func NewPlaylistHandler(service *playlist.Service) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// Create handles POST /playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	requester := middleware.RequesterID(c)
	if requester == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := playlist.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	}
	if req.Visibility != nil {
		visibility := models.Visibility(*req.Visibility)
		input.Visibility = &visibility
	}
	sharedIDs, ok := parseUUIDs(c, req.SharedUserIDs)
	if !ok {
		return
	}
	input.SharedUserIDs = sharedIDs

	view, err := h.service.Create(c.Request.Context(), *requester, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Get handles GET /playlists/:id
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), playlistID, middleware.RequesterID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListPublic handles GET /playlists/public
func (h *PlaylistHandler) ListPublic(c *gin.Context) {
	views, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlaylistListResponse{Playlists: views})
}

// ListByUser handles GET /users/:userID/playlists
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	views, err := h.service.ListByUser(c.Request.Context(), userID, middleware.RequesterID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlaylistListResponse{Playlists: views})
}

// Update handles PATCH /playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := playlist.UpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	}
	if req.Visibility != nil {
		visibility := models.Visibility(*req.Visibility)
		input.Visibility = &visibility
	}
	if req.SharedUserIDs != nil {
		sharedIDs, ok := parseUUIDs(c, *req.SharedUserIDs)
		if !ok {
			return
		}
		input.SharedUserIDs = &sharedIDs
	}

	view, err := h.service.Update(c.Request.Context(), playlistID, middleware.RequesterID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), playlistID, middleware.RequesterID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddTrack handles POST /playlists/:id/tracks
func (h *PlaylistHandler) AddTrack(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.AddTrack(c.Request.Context(), playlistID, middleware.RequesterID(c), req.ExternalTrackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveTrack handles DELETE /playlists/:id/tracks/:trackID
func (h *PlaylistHandler) RemoveTrack(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trackID, ok := parseIDParam(c, "trackID")
	if !ok {
		return
	}

	view, err := h.service.RemoveTrack(c.Request.Context(), playlistID, middleware.RequesterID(c), trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// MoveTrack handles PATCH /playlists/:id/tracks/:trackID/position
func (h *PlaylistHandler) MoveTrack(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trackID, ok := parseIDParam(c, "trackID")
	if !ok {
		return
	}

	var req MoveTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.MoveTrack(c.Request.Context(), playlistID, middleware.RequesterID(c), trackID, *req.Position)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// parseIDParam parses a UUID path parameter, responding 400 on failure
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDs parses a list of UUID strings, responding 400 on failure
func parseUUIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id: " + s})
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// respondServiceError maps domain errors to HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case playlist.IsPlaylistNotFound(err), playlist.IsTrackNotFound(err),
		playlist.IsUserNotFound(err), playlist.IsTrackNotInPlaylist(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case playlist.IsAccessDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case playlist.IsDuplicateTrack(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case playlist.IsInvalidPosition(err), playlist.IsInvalidVisibility(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case track.IsCatalogLookup(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// SetupPlaylistRoutes registers playlist routes
func SetupPlaylistRoutes(apiGroup *gin.RouterGroup, service *playlist.Service) {
	handler := NewPlaylistHandler(service)

	playlists := apiGroup.Group("/playlists")
	{
		playlists.POST("", handler.Create)
		playlists.GET("/public", handler.ListPublic)
		playlists.GET("/:id", handler.Get)
		playlists.PATCH("/:id", handler.Update)
		playlists.DELETE("/:id", handler.Delete)
		playlists.POST("/:id/tracks", handler.AddTrack)
		playlists.DELETE("/:id/tracks/:trackID", handler.RemoveTrack)
		playlists.PATCH("/:id/tracks/:trackID/position", handler.MoveTrack)
	}

	apiGroup.GET("/users/:userID/playlists", handler.ListByUser)
}
