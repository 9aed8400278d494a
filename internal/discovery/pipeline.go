package discovery

import (
	"context"
	"log/slog"
	"sync"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/logging"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/ideas"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/segment"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/youtube"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/store"
)

// Fallback clip bounds applied when a transcript is unavailable or
// localization fails.
const (
	fallbackStart = 0
	fallbackEnd   = 30
)

const fallbackDescription = "Transcript unavailable; defaulted to the first 30 seconds"

// IdeaGenerator produces search ideas for a narration section.
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, sectionText string) ([]ideas.Suggestion, error)
}

// QuerySuggester proposes search queries for user-selected text.
type QuerySuggester interface {
	SuggestQueries(ctx context.Context, selectedText string) ([]ideas.Suggestion, error)
}

// MediaSearcher finds candidate videos for a query.
type MediaSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]youtube.Result, error)
}

// Localizer locates time-bounded segments inside a transcript.
type Localizer interface {
	LocalizeSegment(ctx context.Context, sectionText, query, reasoning string, transcript []services.TranscriptSegment) (segment.Localization, error)
	LocalizeFreeform(ctx context.Context, userPrompt string, transcript []services.TranscriptSegment) ([]segment.FreeformMatch, error)
}

// TranscriptSource provides memoized transcripts by video ID.
type TranscriptSource interface {
	GetOrFetch(ctx context.Context, videoID string) ([]services.TranscriptSegment, error)
}

// Pipeline orchestrates discovery for one document session.
type Pipeline struct {
	store       *store.Store
	tracker     *Tracker
	ideas       IdeaGenerator
	suggester   QuerySuggester
	search      MediaSearcher
	localizer   Localizer
	transcripts TranscriptSource
	logger      *slog.Logger
	newID       script.IDGenerator
	searchLimit int
}

// Deps bundles the pipeline's collaborators.
type Deps struct {
	Store       *store.Store
	Tracker     *Tracker
	Ideas       IdeaGenerator
	Suggester   QuerySuggester
	Search      MediaSearcher
	Localizer   Localizer
	Transcripts TranscriptSource
	Logger      *slog.Logger
	NewID       script.IDGenerator
	SearchLimit int
}

// New constructs the pipeline.
func New(deps Deps) *Pipeline {
	if deps.Tracker == nil {
		deps.Tracker = NewTracker()
	}
	if deps.NewID == nil {
		deps.NewID = script.NewUUIDGenerator()
	}
	if deps.SearchLimit <= 0 {
		deps.SearchLimit = 5
	}
	return &Pipeline{
		store:       deps.Store,
		tracker:     deps.Tracker,
		ideas:       deps.Ideas,
		suggester:   deps.Suggester,
		search:      deps.Search,
		localizer:   deps.Localizer,
		transcripts: deps.Transcripts,
		logger:      logging.NewComponentLogger(deps.Logger, "discovery"),
		newID:       deps.NewID,
		searchLimit: deps.SearchLimit,
	}
}

// Tracker exposes the progress tracker for presentation layers.
func (p *Pipeline) Tracker() *Tracker {
	return p.tracker
}

// Run processes every eligible section of the document concurrently and
// returns once all of them have settled at Done or Failed. Sections that
// are source clips or already carry ideas are skipped. The only error Run
// itself reports is context cancellation.
func (p *Pipeline) Run(ctx context.Context, doc *script.Document) error {
	ctx = services.WithRequestID(ctx, p.newID())

	var eligible []*script.Section
	for _, section := range doc.Sections {
		if section.Eligible() {
			eligible = append(eligible, section)
		}
	}
	p.logger.Info("discovery started",
		logging.String(logging.FieldEventType, "discovery_start"),
		logging.Int("sections", len(doc.Sections)),
		logging.Int("eligible", len(eligible)))

	var wg sync.WaitGroup
	for _, section := range eligible {
		wg.Add(1)
		go func(section *script.Section) {
			defer wg.Done()
			p.processSection(services.WithSectionID(ctx, section.ID), section)
		}(section)
	}
	wg.Wait()

	p.logger.Info("discovery finished",
		logging.String(logging.FieldEventType, "discovery_complete"),
		logging.Int("eligible", len(eligible)))
	return ctx.Err()
}

// processSection drives one section through the three stages. Stage order
// is enforced by data dependency: searching needs ideas, localizing needs
// search results.
func (p *Pipeline) processSection(ctx context.Context, section *script.Section) {
	p.tracker.set(section.ID, StageIdeating)
	stageCtx := services.WithStage(ctx, string(StageIdeating))
	sectionIdeas, err := p.generateIdeas(stageCtx, section)
	if err != nil {
		logging.WithContext(stageCtx, p.logger).Error("ideation failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.Error(err))
		p.tracker.set(section.ID, StageFailed)
		return
	}

	p.tracker.set(section.ID, StageSearching)
	stageCtx = services.WithStage(ctx, string(StageSearching))
	searchOutcomes := fanOut(len(sectionIdeas), func(i int) ([]youtube.Result, error) {
		return p.search.Search(stageCtx, sectionIdeas[i].Query, p.searchLimit)
	})
	for i, searched := range searchOutcomes {
		if searched.err != nil {
			// Degraded to zero results for this idea only.
			logging.WithContext(stageCtx, p.logger).Warn("search failed",
				logging.String("query", sectionIdeas[i].Query),
				logging.Error(searched.err))
		}
	}

	p.tracker.set(section.ID, StageLocalizing)
	stageCtx = services.WithStage(ctx, string(StageLocalizing))
	fanOut(len(sectionIdeas), func(i int) (struct{}, error) {
		results := searchOutcomes[i].value
		if len(results) == 0 {
			return struct{}{}, nil
		}
		candidate := p.localizeIdea(stageCtx, section, sectionIdeas[i], results[0])
		if appendErr := p.store.AppendCandidate(stageCtx, candidate); appendErr != nil {
			logging.WithContext(stageCtx, p.logger).Error("append candidate failed",
				logging.String("candidate_id", candidate.ID),
				logging.Error(appendErr))
		}
		return struct{}{}, nil
	})

	logger := logging.WithContext(ctx, p.logger)

	p.tracker.set(section.ID, StageDone)
	logger.Info("section settled",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("status", string(StageDone)))
}

// generateIdeas runs ideation and persists the resulting ideas.
func (p *Pipeline) generateIdeas(ctx context.Context, section *script.Section) ([]script.Idea, error) {
	suggestions, err := p.ideas.GenerateIdeas(ctx, section.Text)
	if err != nil {
		return nil, err
	}
	sectionIdeas := make([]script.Idea, 0, len(suggestions))
	for _, suggestion := range suggestions {
		sectionIdeas = append(sectionIdeas, script.Idea{
			ID:        p.newID(),
			Type:      ideaTypeFor(suggestion.Type),
			Query:     suggestion.Query,
			Reasoning: suggestion.Reasoning,
		})
	}
	if err := p.store.SetIdeas(ctx, section.ID, sectionIdeas); err != nil {
		return nil, err
	}
	return sectionIdeas, nil
}

// localizeIdea turns one idea's top search result into a candidate. It
// always returns one: transcript or localization failures produce the
// unverified fallback instead of a gap.
func (p *Pipeline) localizeIdea(ctx context.Context, section *script.Section, idea script.Idea, top youtube.Result) *script.Candidate {
	candidate := &script.Candidate{
		ID:          p.newID(),
		SectionID:   section.ID,
		Source:      script.SourceInitial,
		IdeaType:    idea.Type,
		SearchQuery: idea.Query,
		MediaID:     top.VideoID,
		MediaTitle:  top.Title,
		Channel:     top.Channel,
		Note:        idea.Reasoning,
	}

	located, err := p.localize(ctx, section.Text, idea.Query, idea.Reasoning, top.VideoID)
	if err != nil {
		logging.WithContext(ctx, p.logger).Warn("localization degraded",
			logging.String("video_id", top.VideoID),
			logging.Error(err))
		candidate.Start = fallbackStart
		candidate.End = fallbackEnd
		candidate.Confidence = script.ConfidenceUnverified
		candidate.Description = fallbackDescription
		return candidate
	}

	candidate.Start = located.Start
	candidate.End = located.End
	candidate.Confidence = script.ParseConfidence(located.Confidence)
	candidate.Description = located.Description
	if located.Alternative != nil {
		candidate.Alternative = &script.Segment{
			Start:       located.Alternative.Start,
			End:         located.Alternative.End,
			Description: located.Alternative.Description,
		}
	}
	return candidate
}

func (p *Pipeline) localize(ctx context.Context, sectionText, query, reasoning, videoID string) (segment.Localization, error) {
	transcript, err := p.transcripts.GetOrFetch(ctx, videoID)
	if err != nil {
		return segment.Localization{}, err
	}
	return p.localizer.LocalizeSegment(ctx, sectionText, query, reasoning, transcript)
}

func ideaTypeFor(value string) script.IdeaType {
	switch script.IdeaType(value) {
	case script.IdeaLiteral, script.IdeaAbstract, script.IdeaEntity:
		return script.IdeaType(value)
	default:
		return script.IdeaManual
	}
}
