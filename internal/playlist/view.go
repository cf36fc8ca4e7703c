package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mooddy/playlist-service/internal/models"
)

// View is the external representation of a playlist returned by every
// aggregate operation.
type View struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description,omitempty"`
	CoverImageURL *string           `json:"cover_image_url,omitempty"`
	Visibility    models.Visibility `json:"visibility"`
	OwnerID       uuid.UUID         `json:"owner_id"`
	OwnerNickname string            `json:"owner_nickname"`
	Tracks        []*EntryView      `json:"tracks"`
	SharedUserIDs []uuid.UUID       `json:"shared_user_ids,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// EntryView is one playlist entry with its resolved track
type EntryView struct {
	ID       uuid.UUID     `json:"id"`
	TrackID  uuid.UUID     `json:"track_id"`
	Position int           `json:"position"`
	Track    *models.Track `json:"track,omitempty"`
}

// reloadView re-reads the playlist and builds its view, so the view
// reflects the state just committed rather than the pre-mutation load
func (s *Service) reloadView(ctx context.Context, playlistID uuid.UUID, requester *uuid.UUID) (*View, error) {
	fresh, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, fresh, requester)
}

// buildView assembles the external representation of a playlist. The
// shared-user-id list is included only when the requester is the owner;
// shared viewers never see who else the playlist is shared with.
func (s *Service) buildView(ctx context.Context, p *models.Playlist, requester *uuid.UUID) (*View, error) {
	owner, err := s.repos.Users.GetByID(ctx, p.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build playlist view: %w", err)
	}

	entries, err := s.repos.PlaylistTracks.GetWithTracks(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build playlist view: %w", err)
	}

	entryViews := make([]*EntryView, len(entries))
	for i, entry := range entries {
		entryViews[i] = &EntryView{
			ID:       entry.ID,
			TrackID:  entry.TrackID,
			Position: entry.Position,
			Track:    entry.Track,
		}
	}

	view := &View{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		CoverImageURL: p.CoverImageURL,
		Visibility:    p.Visibility,
		OwnerID:       p.OwnerID,
		OwnerNickname: owner.Nickname,
		Tracks:        entryViews,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if requester != nil && p.IsOwner(*requester) {
		shares, err := s.repos.Shares.GetByPlaylistID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to build playlist view: %w", err)
		}
		sharedIDs := make([]uuid.UUID, len(shares))
		for i, share := range shares {
			sharedIDs[i] = share.UserID
		}
		view.SharedUserIDs = sharedIDs
	}

	return view, nil
}
