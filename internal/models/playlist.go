package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist represents a user-owned playlist entity
type Playlist struct {
	ID            uuid.UUID  `json:"id" gorm:"type:text;primaryKey;column:id"`
	Title         string     `json:"title" gorm:"type:text;not null;column:title" validate:"required,min=1,max=255"`
	Description   *string    `json:"description,omitempty" gorm:"type:text;column:description"`
	CoverImageURL *string    `json:"cover_image_url,omitempty" gorm:"type:text;column:cover_image_url"`
	Visibility    Visibility `json:"visibility" gorm:"type:text;not null;default:'PUBLIC';column:visibility"`
	OwnerID       uuid.UUID  `json:"owner_id" gorm:"type:text;not null;column:owner_id" validate:"required"`
	CreatedAt     time.Time  `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewPlaylist creates a new Playlist with generated UUID and timestamps
func NewPlaylist(ownerID uuid.UUID, title string, visibility Visibility) *Playlist {
	now := time.Now().UTC()
	return &Playlist{
		ID:         uuid.New(),
		Title:      title,
		Visibility: visibility,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch updates the playlist's modification timestamp
func (p *Playlist) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// IsOwner reports whether the given user owns this playlist
func (p *Playlist) IsOwner(userID uuid.UUID) bool {
	return p.OwnerID == userID
}
