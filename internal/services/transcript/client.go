// Package transcript wraps a timed-transcript provider. The provider is an
// HTTP service that returns JSON segments for a video ID and answers 404
// when the video has no transcript; that case is surfaced as
// services.ErrNotAvailable so the pipeline can degrade instead of failing.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
)

const defaultHTTPTimeout = 20 * time.Second

// Client fetches timed transcripts for video IDs.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a transcript client for the given provider base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Fetch returns the timed transcript for a video. A provider 404 maps to
// services.ErrNotAvailable; every other failure maps to services.ErrService.
func (c *Client) Fetch(ctx context.Context, videoID string) ([]services.TranscriptSegment, error) {
	const op = "fetch"
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, "transcript", op, "video id required", nil)
	}
	if c.baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcript", op, "provider url required", nil)
	}

	endpoint := c.baseURL + "/transcript?videoId=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrService, "transcript", op, "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrService, "transcript", op, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrService, "transcript", op, "read body", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, services.Wrap(services.ErrNotAvailable, "transcript", op,
			fmt.Sprintf("no transcript for video %s", videoID), nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrService, "transcript", op,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var segments []services.TranscriptSegment
	if err := json.Unmarshal(body, &segments); err != nil {
		return nil, services.Wrap(services.ErrService, "transcript", op, "decode response", err)
	}
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrNotAvailable, "transcript", op,
			fmt.Sprintf("empty transcript for video %s", videoID), nil)
	}
	return segments, nil
}
