package catalog

import "errors"

// Custom catalog client errors
var (
	// ErrNotFound indicates the catalog returned no result for the id or query
	ErrNotFound = errors.New("track not found in catalog")

	// ErrUpstream indicates the catalog API failed or returned a non-2xx status
	ErrUpstream = errors.New("catalog request failed")
)

// IsNotFound checks if the error is a catalog not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
