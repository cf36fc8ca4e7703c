package playlist

import (
	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// CanRead decides whether a requester may read a playlist. requester is
// nil for anonymous requests; sharedUserIDs are the users granted access
// when the playlist is SHARED (ignored in other modes).
//
//	PUBLIC:  always readable, including anonymously
//	PRIVATE: owner only
//	SHARED:  owner or a granted user
func CanRead(p *models.Playlist, sharedUserIDs []uuid.UUID, requester *uuid.UUID) bool {
	if p.Visibility == models.VisibilityPublic {
		return true
	}
	if requester == nil {
		return false
	}
	if p.IsOwner(*requester) {
		return true
	}
	if p.Visibility == models.VisibilityShared {
		for _, id := range sharedUserIDs {
			if id == *requester {
				return true
			}
		}
	}
	return false
}

// CanWrite decides whether a requester may modify a playlist. Writes are
// owner-only regardless of visibility; anonymous requesters never qualify.
func CanWrite(p *models.Playlist, requester *uuid.UUID) bool {
	return requester != nil && p.IsOwner(*requester)
}
