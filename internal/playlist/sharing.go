package playlist

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/db"
	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/mooddy/playlist-service/internal/models"
	"gorm.io/gorm"
)

// syncShares reconciles a playlist's share set against the desired
// shared-user list, inside the caller's transaction.
//
// Outside SHARED mode every share is deleted regardless of the list.
// In SHARED mode with shouldUpdate false the existing set is left
// untouched. Otherwise the set is diffed against desired = ids − {owner}:
// stale shares are deleted and missing ones created, so surviving shares
// keep their identity instead of being cleared and reinserted.
func (s *Service) syncShares(tx *gorm.DB, playlist *models.Playlist, visibility models.Visibility, sharedUserIDs []uuid.UUID, shouldUpdate bool) error {
	if visibility != models.VisibilityShared {
		result := tx.Where("playlist_id = ?", playlist.ID.String()).Delete(&models.PlaylistShare{})
		if result.Error != nil {
			return fmt.Errorf("failed to clear playlist shares: %w", db.MapGormError(result.Error))
		}
		if result.RowsAffected > 0 {
			logger.Log.Debug().
				Str("playlist_id", playlist.ID.String()).
				Int64("removed", result.RowsAffected).
				Msg("Cleared shares for non-shared playlist")
		}
		return nil
	}

	if !shouldUpdate {
		return nil
	}

	// The owner is never a share target
	desired := make(map[uuid.UUID]bool, len(sharedUserIDs))
	for _, id := range sharedUserIDs {
		if id != playlist.OwnerID {
			desired[id] = true
		}
	}

	var current []*models.PlaylistShare
	if err := tx.Where("playlist_id = ?", playlist.ID.String()).Find(&current).Error; err != nil {
		return fmt.Errorf("failed to load playlist shares: %w", db.MapGormError(err))
	}

	// Drop shares no longer desired; keep the rest, removing them from the
	// desired set so only genuinely new users get fresh shares
	for _, share := range current {
		if desired[share.UserID] {
			delete(desired, share.UserID)
			continue
		}
		if err := tx.Where("id = ?", share.ID.String()).Delete(&models.PlaylistShare{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist share: %w", db.MapGormError(err))
		}
	}

	for userID := range desired {
		var target models.User
		if err := tx.Where("id = ?", userID.String()).First(&target).Error; err != nil {
			if db.IsNotFound(db.MapGormError(err)) {
				logger.Log.Warn().
					Str("playlist_id", playlist.ID.String()).
					Str("user_id", userID.String()).
					Msg("Share sync failed: target user not found")
				return fmt.Errorf("share target %s: %w", userID, ErrUserNotFound)
			}
			return fmt.Errorf("failed to look up share target: %w", db.MapGormError(err))
		}

		share := models.NewPlaylistShare(playlist.ID, target.ID)
		if err := tx.Create(share).Error; err != nil {
			return fmt.Errorf("failed to create playlist share: %w", db.MapGormError(err))
		}
	}

	return nil
}
