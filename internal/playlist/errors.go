package playlist

import "errors"

// Custom playlist service errors
var (
	// ErrPlaylistNotFound indicates the requested playlist does not exist
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrTrackNotFound indicates the requested track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrUserNotFound indicates a sharing target user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied indicates the requester may not read or modify the playlist
	ErrAccessDenied = errors.New("access denied")

	// ErrDuplicateTrack indicates the track is already in the playlist
	ErrDuplicateTrack = errors.New("track already in playlist")

	// ErrTrackNotInPlaylist indicates the playlist has no entry for the track
	ErrTrackNotInPlaylist = errors.New("track not in playlist")

	// ErrInvalidPosition indicates a move target outside 0..size-1
	ErrInvalidPosition = errors.New("position out of range")

	// ErrInvalidVisibility indicates an unknown visibility mode
	ErrInvalidVisibility = errors.New("invalid visibility mode")
)

// IsPlaylistNotFound checks if the error is a playlist not found error
func IsPlaylistNotFound(err error) bool {
	return errors.Is(err, ErrPlaylistNotFound)
}

// IsTrackNotFound checks if the error is a track not found error
func IsTrackNotFound(err error) bool {
	return errors.Is(err, ErrTrackNotFound)
}

// IsUserNotFound checks if the error is a user not found error
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsAccessDenied checks if the error is an access denied error
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsDuplicateTrack checks if the error is a duplicate track error
func IsDuplicateTrack(err error) bool {
	return errors.Is(err, ErrDuplicateTrack)
}

// IsTrackNotInPlaylist checks if the error is a track not in playlist error
func IsTrackNotInPlaylist(err error) bool {
	return errors.Is(err, ErrTrackNotInPlaylist)
}

// IsInvalidPosition checks if the error is an invalid position error
func IsInvalidPosition(err error) bool {
	return errors.Is(err, ErrInvalidPosition)
}

// IsInvalidVisibility checks if the error is an invalid visibility error
func IsInvalidVisibility(err error) bool {
	return errors.Is(err, ErrInvalidVisibility)
}
