package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaylistShare grants one user read access to a SHARED playlist.
// At most one share exists per (playlist, user) pair; shares are only
// created and destroyed by the sharing reconciler.
type PlaylistShare struct {
	ID         uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	PlaylistID uuid.UUID `json:"playlist_id" gorm:"type:text;not null;column:playlist_id" validate:"required"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:text;not null;column:user_id" validate:"required"`
	CreatedAt  time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewPlaylistShare creates a new PlaylistShare with generated UUID and timestamp
func NewPlaylistShare(playlistID, userID uuid.UUID) *PlaylistShare {
	return &PlaylistShare{
		ID:         uuid.New(),
		PlaylistID: playlistID,
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
	}
}
