package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/segment"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/youtube"
)

// ManualSearch runs one ad-hoc query against a section, re-entering the
// search and localization stages outside the bulk run. The top search
// result is localized with the same fallback contract as the pipeline. A
// query with no results returns nil without error.
func (p *Pipeline) ManualSearch(ctx context.Context, sectionID, query string) (*script.Candidate, error) {
	return p.adhocSearch(ctx, sectionID, query, "", script.SourceManual)
}

// FromSelection asks the suggester for queries matching user-selected text
// and runs the top suggestion through search and localization.
func (p *Pipeline) FromSelection(ctx context.Context, sectionID, selectedText string) (*script.Candidate, error) {
	suggestions, err := p.suggester.SuggestQueries(ctx, selectedText)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, nil
	}
	return p.adhocSearch(ctx, sectionID, suggestions[0].Query, suggestions[0].Reasoning, script.SourceTextSelection)
}

// FromURL localizes a freeform prompt inside one specific video, given a
// YouTube URL or bare video ID. The best match becomes a candidate; a
// transcript or localization failure degrades to the unverified fallback.
func (p *Pipeline) FromURL(ctx context.Context, sectionID, videoURL, userPrompt string) (*script.Candidate, error) {
	videoID, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "discovery", "from url",
			fmt.Sprintf("no video id in %q", videoURL), nil)
	}

	section, err := p.store.Section(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	candidate := &script.Candidate{
		ID:          p.newID(),
		SectionID:   section.ID,
		Source:      script.SourceURLSearch,
		IdeaType:    script.IdeaManual,
		SearchQuery: userPrompt,
		MediaID:     videoID,
		MediaTitle:  videoID,
	}

	matches, err := p.freeform(ctx, userPrompt, videoID)
	switch {
	case err != nil:
		candidate.Start = fallbackStart
		candidate.End = fallbackEnd
		candidate.Confidence = script.ConfidenceUnverified
		candidate.Description = fallbackDescription
	case len(matches) == 0:
		return nil, nil
	default:
		best := matches[0]
		candidate.Start = best.Start
		candidate.End = best.End
		candidate.Confidence = script.ParseConfidence(best.Confidence)
		candidate.Description = best.Description
		candidate.Note = best.Excerpt
	}

	if err := p.store.AppendCandidate(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (p *Pipeline) freeform(ctx context.Context, userPrompt, videoID string) ([]segment.FreeformMatch, error) {
	transcript, err := p.transcripts.GetOrFetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return p.localizer.LocalizeFreeform(ctx, userPrompt, transcript)
}

func (p *Pipeline) adhocSearch(ctx context.Context, sectionID, query, reasoning string, source script.CandidateSource) (*script.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "discovery", "manual search", "query required", nil)
	}

	section, err := p.store.Section(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	results, err := p.search.Search(ctx, query, p.searchLimit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	idea := script.Idea{
		ID:        p.newID(),
		Type:      script.IdeaManual,
		Query:     query,
		Reasoning: reasoning,
	}
	candidate := p.localizeIdea(ctx, section, idea, results[0])
	candidate.Source = source
	if err := p.store.AppendCandidate(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}
