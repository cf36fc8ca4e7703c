package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// PlaylistTrackRepository handles database operations for playlist tracks
type PlaylistTrackRepository struct {
	db *DB
}

// NewPlaylistTrackRepository creates a new playlist track repository
func NewPlaylistTrackRepository(db *DB) *PlaylistTrackRepository {
	return &PlaylistTrackRepository{db: db}
}

// Create inserts a new playlist track into the database
func (r *PlaylistTrackRepository) Create(ctx context.Context, entry *models.PlaylistTrack) error {
	result := r.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist track: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByPlaylistID retrieves all entries for a playlist, ordered by position
func (r *PlaylistTrackRepository) GetByPlaylistID(ctx context.Context, playlistID uuid.UUID) ([]*models.PlaylistTrack, error) {
	var entries []*models.PlaylistTrack
	result := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID.String()).
		Order("position ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", MapGormError(result.Error))
	}
	return entries, nil
}

// GetByPlaylistAndTrack retrieves the entry for a specific track within a playlist
func (r *PlaylistTrackRepository) GetByPlaylistAndTrack(ctx context.Context, playlistID, trackID uuid.UUID) (*models.PlaylistTrack, error) {
	var entry models.PlaylistTrack
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND track_id = ?", playlistID.String(), trackID.String()).
		First(&entry)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &entry, nil
}

// GetWithTracks retrieves a playlist's entries ordered by position with
// their track rows attached
func (r *PlaylistTrackRepository) GetWithTracks(ctx context.Context, playlistID uuid.UUID) ([]*models.PlaylistTrack, error) {
	entries, err := r.GetByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	trackIDs := make([]string, len(entries))
	for i, entry := range entries {
		trackIDs[i] = entry.TrackID.String()
	}

	var tracks []*models.Track
	result := r.db.WithContext(ctx).Where("id IN ?", trackIDs).Find(&tracks)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get tracks for playlist: %w", MapGormError(result.Error))
	}

	byID := make(map[uuid.UUID]*models.Track, len(tracks))
	for _, track := range tracks {
		byID[track.ID] = track
	}
	for _, entry := range entries {
		entry.Track = byID[entry.TrackID]
	}

	return entries, nil
}

// CountByPlaylist returns the number of entries in a playlist
func (r *PlaylistTrackRepository) CountByPlaylist(ctx context.Context, playlistID uuid.UUID) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.PlaylistTrack{}).
		Where("playlist_id = ?", playlistID.String()).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count playlist tracks: %w", MapGormError(result.Error))
	}
	return int(count), nil
}

// DeleteByPlaylistID deletes all entries for a playlist
func (r *PlaylistTrackRepository) DeleteByPlaylistID(ctx context.Context, playlistID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID.String()).
		Delete(&models.PlaylistTrack{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist tracks: %w", MapGormError(result.Error))
	}
	return nil
}
