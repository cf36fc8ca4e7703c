package track

import "errors"

// Custom track resolver errors
var (
	// ErrCatalogLookup indicates the external catalog fetch failed, timed out,
	// or returned no result for the requested id
	ErrCatalogLookup = errors.New("catalog lookup failed")

	// ErrResolutionConflict indicates the insert hit a unique-constraint
	// violation but the follow-up lookup still found no row. The constraint
	// guarantees this cannot happen, so it is surfaced as an invariant
	// violation and never retried.
	ErrResolutionConflict = errors.New("track resolution conflict")
)

// IsCatalogLookup checks if the error is a catalog lookup failure
func IsCatalogLookup(err error) bool {
	return errors.Is(err, ErrCatalogLookup)
}

// IsResolutionConflict checks if the error is a resolution conflict
func IsResolutionConflict(err error) bool {
	return errors.Is(err, ErrResolutionConflict)
}
