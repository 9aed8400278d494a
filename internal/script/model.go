package script

import "strings"

// SectionKind distinguishes narration sections from raw source-clip notes.
type SectionKind string

const (
	KindNarration  SectionKind = "narration"
	KindSourceClip SectionKind = "source_clip"
)

// SourceClipHeading is the reserved heading that marks a section as a source
// clip. The comparison is case-insensitive.
const SourceClipHeading = "SOURCE_CLIP"

// IdeaType classifies how a search query relates to the section text.
type IdeaType string

const (
	IdeaLiteral  IdeaType = "literal"
	IdeaAbstract IdeaType = "abstract"
	IdeaEntity   IdeaType = "entity"
	IdeaManual   IdeaType = "manual"
)

// CandidateSource records which user or pipeline action produced a candidate.
type CandidateSource string

const (
	SourceInitial       CandidateSource = "initial"
	SourceManual        CandidateSource = "manual"
	SourceTextSelection CandidateSource = "text_selection"
	SourceURLSearch     CandidateSource = "url_search"
)

// Confidence grades how well a located segment matches the search intent.
type Confidence string

const (
	ConfidenceHigh       Confidence = "high"
	ConfidenceMedium     Confidence = "medium"
	ConfidenceLow        Confidence = "low"
	ConfidenceUnverified Confidence = "unverified"
)

// ParseConfidence normalizes a provider-supplied confidence label, falling
// back to unverified for anything unrecognized.
func ParseConfidence(value string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(value))) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	case ConfidenceLow:
		return ConfidenceLow
	default:
		return ConfidenceUnverified
	}
}

// Document is one parsed narration script. Title is fixed at parse time;
// Sections are mutated only through store operations.
type Document struct {
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
}

// Section is a single narrative unit of the script.
type Section struct {
	ID         string       `json:"id"`
	Index      int          `json:"index"`
	Kind       SectionKind  `json:"kind"`
	Heading    string       `json:"heading"`
	Text       string       `json:"text"`
	Ideas      []Idea       `json:"ideas,omitempty"`
	Candidates []*Candidate `json:"candidates,omitempty"`
}

// Eligible reports whether the discovery pipeline should process the section.
// Source clips are skipped, as are sections that already carry ideas.
func (s *Section) Eligible() bool {
	return s.Kind == KindNarration && len(s.Ideas) == 0
}

// Idea is one proposed footage search query for a section. Ideas are
// immutable once created.
type Idea struct {
	ID        string   `json:"id"`
	Type      IdeaType `json:"type"`
	Query     string   `json:"query"`
	Reasoning string   `json:"reasoning,omitempty"`
	Searched  bool     `json:"searched,omitempty"`
}

// Segment is a time-bounded slice of a video with a description of what
// happens in it.
type Segment struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"description"`
}

// Candidate is a proposed footage clip bound to one section.
//
// Alternative, when present, is a deferred second pick the user may promote
// via the store's swap operation. Removed candidates are soft-deleted: they
// drop out of aggregate views but stay addressable for the session.
type Candidate struct {
	ID                string          `json:"id"`
	SectionID         string          `json:"sectionId"`
	Source            CandidateSource `json:"source"`
	IdeaType          IdeaType        `json:"ideaType"`
	SearchQuery       string          `json:"searchQuery"`
	MediaID           string          `json:"mediaId"`
	MediaTitle        string          `json:"mediaTitle"`
	Channel           string          `json:"channel"`
	Start             int             `json:"start"`
	End               int             `json:"end"`
	Confidence        Confidence      `json:"confidence"`
	Description       string          `json:"description"`
	Alternative       *Segment        `json:"alternative,omitempty"`
	Note              string          `json:"note,omitempty"`
	MarkedForDownload bool            `json:"markedForDownload"`
	Removed           bool            `json:"removed"`
}

// Duration returns the clip length in seconds.
func (c *Candidate) Duration() int {
	return c.End - c.Start
}
