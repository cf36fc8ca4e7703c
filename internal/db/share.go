package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// ShareRepository handles database operations for playlist shares
type ShareRepository struct {
	db *DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Create inserts a new playlist share into the database
func (r *ShareRepository) Create(ctx context.Context, share *models.PlaylistShare) error {
	result := r.db.WithContext(ctx).Create(share)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist share: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByPlaylistID retrieves all shares for a playlist
func (r *ShareRepository) GetByPlaylistID(ctx context.Context, playlistID uuid.UUID) ([]*models.PlaylistShare, error) {
	var shares []*models.PlaylistShare
	result := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID.String()).
		Find(&shares)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get playlist shares: %w", MapGormError(result.Error))
	}
	return shares, nil
}

// Exists reports whether a share exists for the given playlist and user
func (r *ShareRepository) Exists(ctx context.Context, playlistID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.PlaylistShare{}).
		Where("playlist_id = ? AND user_id = ?", playlistID.String(), userID.String()).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check playlist share: %w", MapGormError(result.Error))
	}
	return count > 0, nil
}

// Delete deletes a share by its UUID
func (r *ShareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.PlaylistShare{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist share: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByPlaylistID deletes all shares for a playlist
func (r *ShareRepository) DeleteByPlaylistID(ctx context.Context, playlistID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID.String()).
		Delete(&models.PlaylistShare{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist shares: %w", MapGormError(result.Error))
	}
	return nil
}
