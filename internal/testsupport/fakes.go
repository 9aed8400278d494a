package testsupport

import (
	"context"
	"sync"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/ideas"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/segment"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/youtube"
)

// FakeIdeas is a scripted ideation client for pipeline tests.
type FakeIdeas struct {
	Suggestions []ideas.Suggestion
	Queries     []ideas.Suggestion
	GenerateErr error
	SuggestErr  error

	mu    sync.Mutex
	Calls []string
}

func (f *FakeIdeas) GenerateIdeas(_ context.Context, sectionText string) ([]ideas.Suggestion, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, sectionText)
	f.mu.Unlock()
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}
	return f.Suggestions, nil
}

func (f *FakeIdeas) SuggestQueries(_ context.Context, selectedText string) ([]ideas.Suggestion, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, selectedText)
	f.mu.Unlock()
	if f.SuggestErr != nil {
		return nil, f.SuggestErr
	}
	return f.Queries, nil
}

// FakeSearcher maps queries to canned search results. Unknown queries return
// an empty slice, matching the real client's no-results behavior.
type FakeSearcher struct {
	Results map[string][]youtube.Result
	Err     error
	ErrFor  map[string]error
}

func (f *FakeSearcher) Search(_ context.Context, query string, _ int) ([]youtube.Result, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if err, ok := f.ErrFor[query]; ok {
		return nil, err
	}
	return f.Results[query], nil
}

// FakeLocalizer returns one scripted localization for every segment request.
type FakeLocalizer struct {
	Localization segment.Localization
	Matches      []segment.FreeformMatch
	SegmentErr   error
	FreeformErr  error
}

func (f *FakeLocalizer) LocalizeSegment(_ context.Context, _, _, _ string, _ []services.TranscriptSegment) (segment.Localization, error) {
	if f.SegmentErr != nil {
		return segment.Localization{}, f.SegmentErr
	}
	return f.Localization, nil
}

func (f *FakeLocalizer) LocalizeFreeform(_ context.Context, _ string, _ []services.TranscriptSegment) ([]segment.FreeformMatch, error) {
	if f.FreeformErr != nil {
		return nil, f.FreeformErr
	}
	return f.Matches, nil
}

// FakeTranscripts serves transcripts from a map. Missing video IDs report
// services.ErrNotAvailable the way the real provider does.
type FakeTranscripts struct {
	Transcripts map[string][]services.TranscriptSegment
	Err         error

	mu      sync.Mutex
	Fetches []string
}

func (f *FakeTranscripts) GetOrFetch(_ context.Context, videoID string) ([]services.TranscriptSegment, error) {
	f.mu.Lock()
	f.Fetches = append(f.Fetches, videoID)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	transcript, ok := f.Transcripts[videoID]
	if !ok {
		return nil, services.ErrNotAvailable
	}
	return transcript, nil
}
