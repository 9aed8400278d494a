// Package transcriptcache memoizes transcript fetches for the lifetime of
// one document session.
//
// Every localization fan-out that lands on the same video shares a single
// transcript fetch: first fetch wins, concurrent fetches for one video ID
// are de-duplicated, and Clear resets the cache between documents. The
// cache is an explicit injectable component so tests can substitute a fake
// fetcher.
package transcriptcache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/logging"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
)

// Fetcher loads a transcript from the provider. It is satisfied by
// transcript.Client.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]services.TranscriptSegment, error)
}

// Cache provides memoized, de-duplicated access to video transcripts.
type Cache struct {
	fetcher Fetcher
	logger  *slog.Logger
	group   singleflight.Group

	mu      sync.RWMutex
	entries map[string][]services.TranscriptSegment
}

// New creates a cache over the given fetcher.
func New(fetcher Fetcher, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cache{
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "transcriptcache"),
		entries: make(map[string][]services.TranscriptSegment),
	}
}

// GetOrFetch returns the cached transcript for the video, fetching it on
// first use. Concurrent calls for the same ID share one fetch. Failed
// fetches are not cached, so a later retry hits the provider again.
func (c *Cache) GetOrFetch(ctx context.Context, videoID string) ([]services.TranscriptSegment, error) {
	c.mu.RLock()
	segments, found := c.entries[videoID]
	c.mu.RUnlock()
	if found {
		return segments, nil
	}

	result, err, shared := c.group.Do(videoID, func() (any, error) {
		fetched, fetchErr := c.fetcher.Fetch(ctx, videoID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		c.mu.Lock()
		c.entries[videoID] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("transcript fetched",
		logging.String("video_id", videoID),
		logging.Bool("shared", shared),
		logging.Int("segments", len(result.([]services.TranscriptSegment))))
	return result.([]services.TranscriptSegment), nil
}

// Len reports how many transcripts are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached transcript. Call it between documents.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]services.TranscriptSegment)
}
