package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Track represents a locally persisted catalog track. Rows are created once
// per distinct external catalog id and never refreshed afterwards.
type Track struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	ExternalID  int64     `json:"external_id" gorm:"type:integer;not null;uniqueIndex;column:external_id" validate:"required"`
	Title       string    `json:"title" gorm:"type:text;not null;column:title" validate:"required"`
	Artist      string    `json:"artist" gorm:"type:text;not null;column:artist"`
	Album       *string   `json:"album,omitempty" gorm:"type:text;column:album"`
	DurationMs  *int      `json:"duration_ms,omitempty" gorm:"type:integer;column:duration_ms"`
	ArtworkURL  *string   `json:"artwork_url,omitempty" gorm:"type:text;column:artwork_url"`
	ReleaseDate *string   `json:"release_date,omitempty" gorm:"type:text;column:release_date"`
	PreviewURL  *string   `json:"preview_url,omitempty" gorm:"type:text;column:preview_url"`
	Genre       *string   `json:"genre,omitempty" gorm:"type:text;column:genre"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewTrack creates a new Track with generated UUID and timestamp
func NewTrack(externalID int64, title, artist string) *Track {
	return &Track{
		ID:         uuid.New(),
		ExternalID: externalID,
		Title:      title,
		Artist:     artist,
		CreatedAt:  time.Now().UTC(),
	}
}

// DurationString returns the track duration in MM:SS format
func (t *Track) DurationString() string {
	if t.DurationMs == nil {
		return "00:00"
	}
	totalSeconds := *t.DurationMs / 1000
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
