package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mooddy/playlist-service/internal/catalog"
)

const maxSearchTermLength = 200

// TrackSearchResponse represents catalog search results
type TrackSearchResponse struct {
	Results []catalog.TrackMetadata `json:"results"`
}

// TrackHandler handles catalog track search requests
type TrackHandler struct {
	catalog catalog.Client
}

// NewTrackHandler creates a new track handler instance
func NewTrackHandler(catalogClient catalog.Client) *TrackHandler {
	return &TrackHandler{catalog: catalogClient}
}

// Search handles GET /tracks/search?term=...&limit=...
func (h *TrackHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}
	if len(term) > maxSearchTermLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is too long"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 25 {
			limit = v
		}
	}

	results, err := h.catalog.Search(c.Request.Context(), term, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to query catalog"})
		return
	}

	c.JSON(http.StatusOK, TrackSearchResponse{Results: results})
}

// SetupTrackRoutes registers track search routes
func SetupTrackRoutes(apiGroup *gin.RouterGroup, catalogClient catalog.Client) {
	handler := NewTrackHandler(catalogClient)
	apiGroup.GET("/tracks/search", handler.Search)
}
