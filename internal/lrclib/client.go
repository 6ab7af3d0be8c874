// Package lrclib provides a client for the lrclib.net lyrics API.
package lrclib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when no lyrics are found.
var ErrNotFound = errors.New("lyrics not found")

const (
	DefaultBaseURL = "https://lrclib.net/api"
	userAgent      = "wavecast/1.0"

	// search results further than this from the track length are ignored
	durationTolerance = 3 * time.Second
)

// Client is an lrclib.net API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client for baseURL; empty means DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// LyricsResult represents the response from the lrclib API.
type LyricsResult struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

func (r *LyricsResult) HasSyncedLyrics() bool { return r.SyncedLyrics != "" }

func (r *LyricsResult) HasPlainLyrics() bool { return r.PlainLyrics != "" }

// Get fetches lyrics by exact artist and title, narrowed by duration when known.
func (c *Client) Get(ctx context.Context, artist, title string, duration time.Duration) (*LyricsResult, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)
	if duration > 0 {
		params.Set("duration", fmt.Sprintf("%.0f", duration.Seconds()))
	}

	var result LyricsResult
	if err := c.getJSON(ctx, "/get", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search runs a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]LyricsResult, error) {
	params := url.Values{}
	params.Set("q", query)

	var results []LyricsResult
	if err := c.getJSON(ctx, "/search", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Find tries Get first and falls back to Search, keeping the first result
// with synced lyrics whose duration is close to the track's.
func (c *Client) Find(ctx context.Context, artist, title string, duration time.Duration) (*LyricsResult, error) {
	result, err := c.Get(ctx, artist, title, duration)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return result, err
	}

	results, err := c.Search(ctx, artist+" "+title)
	if err != nil {
		return nil, err
	}
	var plain *LyricsResult
	for i := range results {
		r := &results[i]
		if duration > 0 && math.Abs(r.Duration-duration.Seconds()) > durationTolerance.Seconds() {
			continue
		}
		if r.HasSyncedLyrics() {
			return r, nil
		}
		if plain == nil && r.HasPlainLyrics() {
			plain = r
		}
	}
	if plain != nil {
		return plain, nil
	}
	return nil, ErrNotFound
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
