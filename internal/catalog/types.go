package catalog

// TrackMetadata holds the catalog fields for a single track, as returned
// by the iTunes lookup and search APIs.
type TrackMetadata struct {
	TrackID          int64  `json:"trackId"`
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	TrackTimeMillis  *int   `json:"trackTimeMillis"`
	ArtworkURL100    string `json:"artworkUrl100"`
	ReleaseDate      string `json:"releaseDate"`
	PreviewURL       string `json:"previewUrl"`
	PrimaryGenreName string `json:"primaryGenreName"`
}

// lookupResponse is the iTunes API response envelope
type lookupResponse struct {
	ResultCount int             `json:"resultCount"`
	Results     []TrackMetadata `json:"results"`
}
