package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// TrackRepository handles database operations for tracks
type TrackRepository struct {
	db *DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new track into the database. Returns ErrDuplicate
// (via MapGormError) when a row with the same external id already exists,
// which the resolver treats as losing a benign race.
func (r *TrackRepository) Create(ctx context.Context, track *models.Track) error {
	result := r.db.WithContext(ctx).Create(track)
	if result.Error != nil {
		return fmt.Errorf("failed to create track: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a track by its UUID
func (r *TrackRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	var track models.Track
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&track)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &track, nil
}

// GetByExternalID retrieves a track by its external catalog id
func (r *TrackRepository) GetByExternalID(ctx context.Context, externalID int64) (*models.Track, error) {
	var track models.Track
	result := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&track)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &track, nil
}
