// Package db provides database connection management and repository interfaces.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// PlaylistRepository handles database operations for playlists
type PlaylistRepository struct {
	db *DB
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	result := r.db.WithContext(ctx).Create(playlist)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a playlist by its UUID
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// ListByOwner retrieves all playlists owned by a user, newest first
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("created_at DESC").
		Find(&playlists)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list playlists by owner: %w", MapGormError(result.Error))
	}
	return playlists, nil
}

// ListByVisibility retrieves all playlists with the given visibility, newest first
func (r *PlaylistRepository) ListByVisibility(ctx context.Context, visibility models.Visibility) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	result := r.db.WithContext(ctx).
		Where("visibility = ?", string(visibility)).
		Order("created_at DESC").
		Find(&playlists)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list playlists by visibility: %w", MapGormError(result.Error))
	}
	return playlists, nil
}

// Update updates an existing playlist's metadata
func (r *PlaylistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	playlist.UpdatedAt = time.Now().UTC()

	// Use Select to explicitly update all fields including zero values
	result := r.db.WithContext(ctx).
		Where("id = ?", playlist.ID.String()).
		Select("title", "description", "cover_image_url", "visibility", "updated_at").
		Updates(playlist)
	if result.Error != nil {
		return fmt.Errorf("failed to update playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Touch bumps the playlist's updated_at timestamp
func (r *PlaylistRepository) Touch(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("id = ?", id.String()).
		Update("updated_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("failed to touch playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a playlist by its UUID (cascade delete to tracks and shares)
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&models.Playlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
