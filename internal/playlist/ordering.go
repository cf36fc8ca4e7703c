package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/db"
	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/mooddy/playlist-service/internal/models"
	"gorm.io/gorm"
)

// AddTrack resolves an external catalog track and appends it to the end of
// the playlist. Owner-only. The appended entry takes position = current
// size, so contiguity holds without shifting anything.
func (s *Service) AddTrack(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID, externalTrackID int64) (*View, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !CanWrite(playlist, requester) {
		logger.Log.Warn().
			Str("playlist_id", playlistID.String()).
			Msg("Add track denied: not owner")
		return nil, fmt.Errorf("failed to add track: %w", ErrAccessDenied)
	}

	// Resolution commits independently of the playlist transaction: the
	// Track row is global state keyed by external id, not playlist state,
	// and the catalog fetch must not hold a database transaction open.
	resolved, _, err := s.resolver.Resolve(ctx, externalTrackID)
	if err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	err = s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ? AND track_id = ?", playlistID.String(), resolved.ID.String()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for existing entry: %w", db.MapGormError(err))
		}
		if count > 0 {
			return ErrDuplicateTrack
		}

		var size int64
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ?", playlistID.String()).
			Count(&size).Error; err != nil {
			return fmt.Errorf("failed to count playlist entries: %w", db.MapGormError(err))
		}

		entry := models.NewPlaylistTrack(playlistID, resolved.ID, int(size))
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create playlist entry: %w", db.MapGormError(err))
		}

		return touchPlaylist(tx, playlistID)
	})
	if err != nil {
		if !IsDuplicateTrack(err) {
			logger.Log.Error().
				Err(err).
				Str("playlist_id", playlistID.String()).
				Int64("external_track_id", externalTrackID).
				Msg("Failed to add track to playlist")
		}
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlistID.String()).
		Str("track_id", resolved.ID.String()).
		Msg("Track added to playlist")

	return s.reloadView(ctx, playlistID, requester)
}

// RemoveTrack removes a track from the playlist and compacts the
// positions above it, restoring the contiguous 0..N-1 sequence.
// Owner-only.
func (s *Service) RemoveTrack(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID, trackID uuid.UUID) (*View, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !CanWrite(playlist, requester) {
		logger.Log.Warn().
			Str("playlist_id", playlistID.String()).
			Msg("Remove track denied: not owner")
		return nil, fmt.Errorf("failed to remove track: %w", ErrAccessDenied)
	}

	err = s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var entry models.PlaylistTrack
		if err := tx.Where("playlist_id = ? AND track_id = ?", playlistID.String(), trackID.String()).
			First(&entry).Error; err != nil {
			if db.IsNotFound(db.MapGormError(err)) {
				return ErrTrackNotInPlaylist
			}
			return fmt.Errorf("failed to find playlist entry: %w", db.MapGormError(err))
		}

		if err := tx.Where("id = ?", entry.ID.String()).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist entry: %w", db.MapGormError(err))
		}

		// Compact everything above the removed position
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ? AND position > ?", playlistID.String(), entry.Position).
			Update("position", gorm.Expr("position - 1")).Error; err != nil {
			return fmt.Errorf("failed to compact positions: %w", db.MapGormError(err))
		}

		return touchPlaylist(tx, playlistID)
	})
	if err != nil {
		if !IsTrackNotInPlaylist(err) {
			logger.Log.Error().
				Err(err).
				Str("playlist_id", playlistID.String()).
				Str("track_id", trackID.String()).
				Msg("Failed to remove track from playlist")
		}
		return nil, fmt.Errorf("failed to remove track: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlistID.String()).
		Str("track_id", trackID.String()).
		Msg("Track removed from playlist")

	return s.reloadView(ctx, playlistID, requester)
}

// MoveTrack moves a track to a new position, shifting only the entries
// strictly between the old and new position. Owner-only. Moving a track
// to its current position is a no-op.
func (s *Service) MoveTrack(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID, trackID uuid.UUID, newPosition int) (*View, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !CanWrite(playlist, requester) {
		logger.Log.Warn().
			Str("playlist_id", playlistID.String()).
			Msg("Move track denied: not owner")
		return nil, fmt.Errorf("failed to move track: %w", ErrAccessDenied)
	}

	err = s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var size int64
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ?", playlistID.String()).
			Count(&size).Error; err != nil {
			return fmt.Errorf("failed to count playlist entries: %w", db.MapGormError(err))
		}

		if newPosition < 0 || int64(newPosition) >= size {
			return fmt.Errorf("position %d outside 0..%d: %w", newPosition, size-1, ErrInvalidPosition)
		}

		var entry models.PlaylistTrack
		if err := tx.Where("playlist_id = ? AND track_id = ?", playlistID.String(), trackID.String()).
			First(&entry).Error; err != nil {
			if db.IsNotFound(db.MapGormError(err)) {
				return ErrTrackNotInPlaylist
			}
			return fmt.Errorf("failed to find playlist entry: %w", db.MapGormError(err))
		}

		oldPosition := entry.Position
		if oldPosition == newPosition {
			return nil
		}

		// Shift only the affected range; the moved entry is set last.
		// Intermediate states stay invisible because the whole sequence
		// commits as one transaction.
		if newPosition < oldPosition {
			// Moving earlier: [newPosition, oldPosition) shifts up
			if err := tx.Model(&models.PlaylistTrack{}).
				Where("playlist_id = ? AND position >= ? AND position < ?", playlistID.String(), newPosition, oldPosition).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return fmt.Errorf("failed to shift positions up: %w", db.MapGormError(err))
			}
		} else {
			// Moving later: (oldPosition, newPosition] shifts down
			if err := tx.Model(&models.PlaylistTrack{}).
				Where("playlist_id = ? AND position > ? AND position <= ?", playlistID.String(), oldPosition, newPosition).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return fmt.Errorf("failed to shift positions down: %w", db.MapGormError(err))
			}
		}

		if err := tx.Model(&models.PlaylistTrack{}).
			Where("id = ?", entry.ID.String()).
			Update("position", newPosition).Error; err != nil {
			return fmt.Errorf("failed to set moved position: %w", db.MapGormError(err))
		}

		return touchPlaylist(tx, playlistID)
	})
	if err != nil {
		if !IsTrackNotInPlaylist(err) && !IsInvalidPosition(err) {
			logger.Log.Error().
				Err(err).
				Str("playlist_id", playlistID.String()).
				Str("track_id", trackID.String()).
				Int("new_position", newPosition).
				Msg("Failed to move track")
		}
		return nil, fmt.Errorf("failed to move track: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlistID.String()).
		Str("track_id", trackID.String()).
		Int("new_position", newPosition).
		Msg("Track moved")

	return s.reloadView(ctx, playlistID, requester)
}

// touchPlaylist bumps updated_at inside the caller's transaction
func touchPlaylist(tx *gorm.DB, playlistID uuid.UUID) error {
	if err := tx.Model(&models.Playlist{}).
		Where("id = ?", playlistID.String()).
		Update("updated_at", time.Now().UTC()).Error; err != nil {
		return fmt.Errorf("failed to touch playlist: %w", db.MapGormError(err))
	}
	return nil
}
