// Package catalog provides a client for the external iTunes track catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mooddy/playlist-service/internal/logger"
)

const (
	defaultTimeout = 5 * time.Second
	maxSearchLimit = 25
)

// Client looks up track metadata in the external catalog
type Client interface {
	// Lookup fetches metadata for a single track by its catalog id.
	// Returns ErrNotFound when the catalog has no such track.
	Lookup(ctx context.Context, trackID int64) (*TrackMetadata, error)

	// Search queries the catalog for tracks matching the term
	Search(ctx context.Context, term string, limit int) ([]TrackMetadata, error)
}

// HTTPClient is the iTunes API implementation of Client
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a catalog client against the given base URL
// (e.g. "https://itunes.apple.com"). A non-positive timeout falls back
// to the default.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup fetches metadata for a single track by its catalog id
func (c *HTTPClient) Lookup(ctx context.Context, trackID int64) (*TrackMetadata, error) {
	val := url.Values{}
	val.Set("id", fmt.Sprint(trackID))

	results, err := c.fetch(ctx, "/lookup", val)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return &results[0], nil
}

// Search queries the catalog for songs matching the term
func (c *HTTPClient) Search(ctx context.Context, term string, limit int) ([]TrackMetadata, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = 20
	}

	val := url.Values{}
	val.Set("term", term)
	val.Set("media", "music")
	val.Set("entity", "song")
	val.Set("limit", fmt.Sprint(limit))

	return c.fetch(ctx, "/search", val)
}

// fetch performs a GET against the catalog and decodes the response envelope
func (c *HTTPClient) fetch(ctx context.Context, path string, query url.Values) ([]TrackMetadata, error) {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("Catalog returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	return body.Results, nil
}
