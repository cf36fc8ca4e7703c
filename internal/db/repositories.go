package db

// Repositories provides access to all database repositories
type Repositories struct {
	Playlists      *PlaylistRepository
	PlaylistTracks *PlaylistTrackRepository
	Tracks         *TrackRepository
	Shares         *ShareRepository
	Users          *UserRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Playlists:      NewPlaylistRepository(db),
		PlaylistTracks: NewPlaylistTrackRepository(db),
		Tracks:         NewTrackRepository(db),
		Shares:         NewShareRepository(db),
		Users:          NewUserRepository(db),
	}
}
