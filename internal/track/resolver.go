// Package track resolves external catalog track ids into local Track rows.
package track

import (
	"context"
	"fmt"

	"github.com/mooddy/playlist-service/internal/catalog"
	"github.com/mooddy/playlist-service/internal/db"
	"github.com/mooddy/playlist-service/internal/logger"
	"github.com/mooddy/playlist-service/internal/models"
)

// Outcome reports whether a resolution returned an existing row or
// persisted a new one.
type Outcome int

// Resolution outcomes
const (
	OutcomeExisting Outcome = iota
	OutcomeCreated
)

// Resolver resolves external track ids into persisted Track rows,
// creating each row at most once. Concurrent resolutions of the same id
// are settled by the unique constraint on external_id: the loser re-reads
// and returns the winner's row instead of taking a lock up front.
type Resolver struct {
	repos   *db.Repositories
	catalog catalog.Client
}

// NewResolver creates a new track resolver
func NewResolver(repos *db.Repositories, catalogClient catalog.Client) *Resolver {
	return &Resolver{
		repos:   repos,
		catalog: catalogClient,
	}
}

// Resolve returns the local Track for an external catalog id, fetching
// metadata and persisting a new row on first use. The catalog fetch may
// run more than once across concurrent callers, but exactly one row is
// ever persisted per external id.
func (r *Resolver) Resolve(ctx context.Context, externalID int64) (*models.Track, Outcome, error) {
	// Fast path: already resolved
	existing, err := r.repos.Tracks.GetByExternalID(ctx, externalID)
	if err == nil {
		return existing, OutcomeExisting, nil
	}
	if !db.IsNotFound(err) {
		return nil, OutcomeExisting, fmt.Errorf("failed to resolve track: %w", err)
	}

	meta, err := r.catalog.Lookup(ctx, externalID)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Int64("external_id", externalID).
			Msg("Catalog lookup failed during track resolution")
		return nil, OutcomeExisting, fmt.Errorf("failed to resolve track %d: %w", externalID, ErrCatalogLookup)
	}

	newTrack := trackFromMetadata(meta)
	if err := r.repos.Tracks.Create(ctx, newTrack); err != nil {
		if db.IsDuplicate(err) {
			// A concurrent resolution won the insert; its row is ours too
			return r.reRead(ctx, externalID)
		}
		logger.Log.Error().
			Err(err).
			Int64("external_id", externalID).
			Msg("Failed to persist resolved track")
		return nil, OutcomeExisting, fmt.Errorf("failed to resolve track %d: %w", externalID, err)
	}

	logger.Log.Info().
		Str("track_id", newTrack.ID.String()).
		Int64("external_id", externalID).
		Msg("Track resolved and persisted")

	return newTrack, OutcomeCreated, nil
}

// reRead fetches the row a concurrent resolution inserted
func (r *Resolver) reRead(ctx context.Context, externalID int64) (*models.Track, Outcome, error) {
	logger.Log.Warn().
		Int64("external_id", externalID).
		Msg("Concurrent track resolution detected, re-reading existing row")

	winner, err := r.repos.Tracks.GetByExternalID(ctx, externalID)
	if err != nil {
		if db.IsNotFound(err) {
			logger.Log.Error().
				Int64("external_id", externalID).
				Msg("Track missing after duplicate-insert conflict")
			return nil, OutcomeExisting, fmt.Errorf("failed to resolve track %d: %w", externalID, ErrResolutionConflict)
		}
		return nil, OutcomeExisting, fmt.Errorf("failed to resolve track %d: %w", externalID, err)
	}

	return winner, OutcomeExisting, nil
}

// trackFromMetadata builds a Track row from catalog metadata
func trackFromMetadata(meta *catalog.TrackMetadata) *models.Track {
	newTrack := models.NewTrack(meta.TrackID, meta.TrackName, meta.ArtistName)
	newTrack.Album = optional(meta.CollectionName)
	newTrack.DurationMs = meta.TrackTimeMillis
	newTrack.ArtworkURL = optional(meta.ArtworkURL100)
	newTrack.ReleaseDate = optional(meta.ReleaseDate)
	newTrack.PreviewURL = optional(meta.PreviewURL)
	newTrack.Genre = optional(meta.PrimaryGenreName)
	return newTrack
}

// optional maps an empty string to nil
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
