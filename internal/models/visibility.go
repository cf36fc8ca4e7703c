package models

// Visibility controls who can read a playlist
type Visibility string

// Playlist visibility modes
const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityShared  Visibility = "SHARED"
)

// Valid reports whether the visibility is one of the known modes
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityShared:
		return true
	}
	return false
}
