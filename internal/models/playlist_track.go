package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaylistTrack represents a playlist entry holding a track at a position.
// Positions within one playlist always form the contiguous sequence 0..N-1.
type PlaylistTrack struct {
	ID         uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	PlaylistID uuid.UUID `json:"playlist_id" gorm:"type:text;not null;column:playlist_id" validate:"required"`
	TrackID    uuid.UUID `json:"track_id" gorm:"type:text;not null;column:track_id" validate:"required"`
	Position   int       `json:"position" gorm:"type:integer;not null;column:position" validate:"gte=0"`
	CreatedAt  time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`

	// Populated by joins, not stored in database
	Track *Track `json:"track,omitempty" gorm:"-"`
}

// NewPlaylistTrack creates a new PlaylistTrack with generated UUID and timestamp
func NewPlaylistTrack(playlistID, trackID uuid.UUID, position int) *PlaylistTrack {
	return &PlaylistTrack{
		ID:         uuid.New(),
		PlaylistID: playlistID,
		TrackID:    trackID,
		Position:   position,
		CreatedAt:  time.Now().UTC(),
	}
}
