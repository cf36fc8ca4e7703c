package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/logger"
)

// RequesterIDKey is the gin context key holding the authenticated requester's
// user id as a uuid.UUID. Absent when the request is anonymous.
const RequesterIDKey = "requester_id"

// userIDHeader is set by the upstream auth gateway after token validation.
// Token issuance and verification happen there; this service only consumes
// the resulting identity.
const userIDHeader = "X-User-ID"

// RequesterIdentity extracts the requester's user id from the gateway header.
// Requests without the header proceed as anonymous; a malformed header is
// rejected rather than silently treated as anonymous.
func RequesterIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		if raw == "" {
			c.Next()
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Log.Warn().
				Str("header", userIDHeader).
				Str("value", raw).
				Msg("Rejected request with malformed user id header")
			c.AbortWithStatusJSON(400, gin.H{"error": "invalid user id header"})
			return
		}

		c.Set(RequesterIDKey, id)
		c.Next()
	}
}

// RequesterID returns the requester id from the gin context, or nil when
// the request is anonymous.
func RequesterID(c *gin.Context) *uuid.UUID {
	val, ok := c.Get(RequesterIDKey)
	if !ok {
		return nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
