// Package playlist implements the playlist aggregate: CRUD, track
// ordering, sharing reconciliation and access control.
package playlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/db"
	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/mooddy/playlist-service/internal/models"
	"github.com/mooddy/playlist-service/internal/track"
	"gorm.io/gorm"
)

// Service handles business logic for playlist operations. Every mutating
// operation runs as a single database transaction.
type Service struct {
	repos    *db.Repositories
	db       *db.DB
	resolver *track.Resolver
}

// NewService creates a new playlist service instance
func NewService(database *db.DB, repos *db.Repositories, resolver *track.Resolver) *Service {
	return &Service{
		repos:    repos,
		db:       database,
		resolver: resolver,
	}
}

// CreateInput holds the fields for creating a playlist
type CreateInput struct {
	Title         string
	Description   *string
	CoverImageURL *string
	Visibility    *models.Visibility
	SharedUserIDs []uuid.UUID
}

// UpdateInput holds the fields for a partial playlist update. Nil fields
// are left unchanged. SharedUserIDs distinguishes an absent field (nil,
// leave the share set untouched) from a present-but-empty list (clear it).
type UpdateInput struct {
	Title         *string
	Description   *string
	CoverImageURL *string
	Visibility    *models.Visibility
	SharedUserIDs *[]uuid.UUID
}

// Create creates a new playlist owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*View, error) {
	visibility := models.VisibilityPublic
	if input.Visibility != nil {
		visibility = *input.Visibility
	}
	if !visibility.Valid() {
		logger.Log.Warn().
			Str("visibility", string(visibility)).
			Msg("Playlist creation failed: invalid visibility")
		return nil, fmt.Errorf("failed to create playlist: %w", ErrInvalidVisibility)
	}

	if _, err := s.repos.Users.GetByID(ctx, ownerID); err != nil {
		if db.IsNotFound(err) {
			return nil, fmt.Errorf("failed to create playlist: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	playlist := models.NewPlaylist(ownerID, input.Title, visibility)
	playlist.Description = input.Description
	playlist.CoverImageURL = input.CoverImageURL

	err := s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(playlist).Error; err != nil {
			return fmt.Errorf("failed to create playlist: %w", db.MapGormError(err))
		}
		return s.syncShares(tx, playlist, visibility, input.SharedUserIDs, true)
	})
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("owner_id", ownerID.String()).
			Msg("Failed to create playlist")
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("title", playlist.Title).
		Msg("Playlist created successfully")

	return s.buildView(ctx, playlist, &ownerID)
}

// Get retrieves a playlist, enforcing the read access policy
func (s *Service) Get(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID) (*View, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	sharedIDs, err := s.sharedUserIDs(ctx, playlist)
	if err != nil {
		return nil, err
	}

	if !CanRead(playlist, sharedIDs, requester) {
		logger.Log.Warn().
			Str("playlist_id", playlistID.String()).
			Msg("Playlist read denied")
		return nil, fmt.Errorf("failed to get playlist: %w", ErrAccessDenied)
	}

	return s.buildView(ctx, playlist, requester)
}

// ListByUser retrieves all of a user's playlists the requester may read
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, requester *uuid.UUID) ([]*View, error) {
	playlists, err := s.repos.Playlists.ListByOwner(ctx, userID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("Failed to list user playlists")
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	views := make([]*View, 0, len(playlists))
	for _, playlist := range playlists {
		sharedIDs, err := s.sharedUserIDs(ctx, playlist)
		if err != nil {
			return nil, err
		}
		if !CanRead(playlist, sharedIDs, requester) {
			continue
		}
		view, err := s.buildView(ctx, playlist, requester)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// ListPublic retrieves all PUBLIC playlists
func (s *Service) ListPublic(ctx context.Context) ([]*View, error) {
	playlists, err := s.repos.Playlists.ListByVisibility(ctx, models.VisibilityPublic)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list public playlists")
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	views := make([]*View, 0, len(playlists))
	for _, playlist := range playlists {
		view, err := s.buildView(ctx, playlist, nil)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// Update applies a partial update to a playlist's metadata and reconciles
// its share set. Owner-only.
func (s *Service) Update(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID, input UpdateInput) (*View, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !CanWrite(playlist, requester) {
		logger.Log.Warn().
			Str("playlist_id", playlistID.String()).
			Msg("Playlist update denied: not owner")
		return nil, fmt.Errorf("failed to update playlist: %w", ErrAccessDenied)
	}

	if input.Title != nil {
		playlist.Title = *input.Title
	}
	if input.Description != nil {
		playlist.Description = input.Description
	}
	if input.CoverImageURL != nil {
		playlist.CoverImageURL = input.CoverImageURL
	}
	if input.Visibility != nil {
		if !input.Visibility.Valid() {
			return nil, fmt.Errorf("failed to update playlist: %w", ErrInvalidVisibility)
		}
		playlist.Visibility = *input.Visibility
	}
	playlist.Touch()

	// The share set is rewritten when visibility left SHARED (grants are
	// meaningless there) or when the caller explicitly sent a list.
	shouldUpdateShares := playlist.Visibility != models.VisibilityShared || input.SharedUserIDs != nil
	var sharedIDs []uuid.UUID
	if input.SharedUserIDs != nil {
		sharedIDs = *input.SharedUserIDs
	}

	err = s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Playlist{}).
			Where("id = ?", playlist.ID.String()).
			Select("title", "description", "cover_image_url", "visibility", "updated_at").
			Updates(playlist)
		if result.Error != nil {
			return fmt.Errorf("failed to update playlist: %w", db.MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrPlaylistNotFound
		}
		return s.syncShares(tx, playlist, playlist.Visibility, sharedIDs, shouldUpdateShares)
	})
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("playlist_id", playlistID.String()).
			Msg("Failed to update playlist")
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlist.ID.String()).
		Msg("Playlist updated successfully")

	return s.buildView(ctx, playlist, requester)
}

// Delete deletes a playlist, cascading its tracks and shares. Owner-only.
func (s *Service) Delete(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID) error {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	if !CanWrite(playlist, requester) {
		logger.Log.Warn().
			Str("playlist_id", playlistID.String()).
			Msg("Playlist delete denied: not owner")
		return fmt.Errorf("failed to delete playlist: %w", ErrAccessDenied)
	}

	if err := s.repos.Playlists.Delete(ctx, playlistID); err != nil {
		logger.Log.Error().
			Err(err).
			Str("playlist_id", playlistID.String()).
			Msg("Failed to delete playlist")
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	logger.Log.Info().
		Str("playlist_id", playlistID.String()).
		Msg("Playlist deleted successfully")

	return nil
}

// getPlaylist loads a playlist, mapping a repository miss to ErrPlaylistNotFound
func (s *Service) getPlaylist(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.repos.Playlists.GetByID(ctx, playlistID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPlaylistNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("playlist_id", playlistID.String()).
			Msg("Failed to load playlist")
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}
	return playlist, nil
}

// sharedUserIDs returns the users granted access to a SHARED playlist.
// Other modes carry no grants, so the lookup is skipped.
func (s *Service) sharedUserIDs(ctx context.Context, playlist *models.Playlist) ([]uuid.UUID, error) {
	if playlist.Visibility != models.VisibilityShared {
		return nil, nil
	}
	shares, err := s.repos.Shares.GetByPlaylistID(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist shares: %w", err)
	}
	ids := make([]uuid.UUID, len(shares))
	for i, share := range shares {
		ids[i] = share.UserID
	}
	return ids, nil
}
