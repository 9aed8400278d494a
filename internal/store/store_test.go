package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/store"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/testsupport"
)

func twoSectionDocument() *script.Document {
	return &script.Document{
		Title: "Test Script",
		Sections: []*script.Section{
			{ID: "sec-1", Index: 0, Kind: script.KindNarration, Heading: "Intro", Text: "Opening narration."},
			{ID: "sec-2", Index: 1, Kind: script.KindNarration, Heading: "Outro", Text: "Closing narration."},
		},
	}
}

func newCandidate(id, sectionID string) *script.Candidate {
	return &script.Candidate{
		ID:          id,
		SectionID:   sectionID,
		Source:      script.SourceInitial,
		IdeaType:    script.IdeaLiteral,
		SearchQuery: "city skyline",
		MediaID:     "vid123",
		MediaTitle:  "City Tour",
		Channel:     "Travel Channel",
		Start:       10,
		End:         40,
		Confidence:  script.ConfidenceHigh,
		Description: "Aerial skyline shot",
	}
}

func TestLoadDocumentRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	doc := twoSectionDocument()
	doc.Sections[0].Ideas = []script.Idea{{ID: "idea-1", Type: script.IdeaLiteral, Query: "skyline"}}
	testsupport.MustLoadDocument(t, st, doc)

	got, err := st.Document(ctx)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if got.Title != "Test Script" {
		t.Errorf("title: got %q", got.Title)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("sections: got %d", len(got.Sections))
	}
	if got.Sections[0].Heading != "Intro" || got.Sections[1].Heading != "Outro" {
		t.Errorf("heading order: %q %q", got.Sections[0].Heading, got.Sections[1].Heading)
	}
	if len(got.Sections[0].Ideas) != 1 || got.Sections[0].Ideas[0].Query != "skyline" {
		t.Errorf("ideas not persisted: %+v", got.Sections[0].Ideas)
	}
}

func TestLoadDocumentReplacesPreviousContents(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	if err := st.AppendCandidate(ctx, newCandidate("cand-1", "sec-1")); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}

	next := &script.Document{
		Title:    "Second Script",
		Sections: []*script.Section{{ID: "sec-9", Index: 0, Kind: script.KindNarration, Heading: "Solo", Text: "Only section."}},
	}
	testsupport.MustLoadDocument(t, st, next)

	got, err := st.Document(ctx)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if got.Title != "Second Script" || len(got.Sections) != 1 {
		t.Fatalf("old document not replaced: %q %d sections", got.Title, len(got.Sections))
	}
	if _, err := st.Candidate(ctx, "cand-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected old candidate gone, got %v", err)
	}
}

func TestSetIdeasUnknownSection(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())

	err := st.SetIdeas(context.Background(), "missing", nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendCandidateValidatesRange(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	bad := newCandidate("cand-bad", "sec-1")
	bad.Start = 30
	bad.End = 30
	if err := st.AppendCandidate(ctx, bad); !errors.Is(err, store.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	negative := newCandidate("cand-neg", "sec-1")
	negative.Start = -5
	if err := st.AppendCandidate(ctx, negative); !errors.Is(err, store.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for negative start, got %v", err)
	}
}

func TestUpdateTimestamps(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	if err := st.AppendCandidate(ctx, newCandidate("cand-1", "sec-1")); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}

	if err := st.UpdateTimestamps(ctx, "cand-1", 15, 45); err != nil {
		t.Fatalf("UpdateTimestamps: %v", err)
	}
	got, err := st.Candidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Candidate: %v", err)
	}
	if got.Start != 15 || got.End != 45 {
		t.Errorf("timestamps: got %d-%d", got.Start, got.End)
	}

	if err := st.UpdateTimestamps(ctx, "cand-1", 45, 45); !errors.Is(err, store.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if err := st.UpdateTimestamps(ctx, "missing", 0, 10); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleMark(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	if err := st.AppendCandidate(ctx, newCandidate("cand-1", "sec-1")); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}

	marked, err := st.ToggleMark(ctx, "cand-1")
	if err != nil || !marked {
		t.Fatalf("first toggle: marked=%v err=%v", marked, err)
	}
	marked, err = st.ToggleMark(ctx, "cand-1")
	if err != nil || marked {
		t.Fatalf("second toggle: marked=%v err=%v", marked, err)
	}
}

func TestRemoveIsSoftDelete(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	candidate := newCandidate("cand-1", "sec-1")
	candidate.MarkedForDownload = true
	if err := st.AppendCandidate(ctx, candidate); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}
	if err := st.Remove(ctx, "cand-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	got, err := st.Candidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("removed candidate must stay addressable: %v", err)
	}
	if !got.Removed {
		t.Error("expected removed flag set")
	}

	marked, err := st.MarkedCandidates(ctx)
	if err != nil {
		t.Fatalf("MarkedCandidates: %v", err)
	}
	if len(marked) != 0 {
		t.Errorf("removed candidate leaked into marked set: %d", len(marked))
	}
}

func TestSwapAlternativeIsInvolution(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	candidate := newCandidate("cand-1", "sec-1")
	candidate.Alternative = &script.Segment{Start: 100, End: 130, Description: "Alternate take"}
	if err := st.AppendCandidate(ctx, candidate); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}

	if err := st.SwapAlternative(ctx, "cand-1"); err != nil {
		t.Fatalf("SwapAlternative: %v", err)
	}
	swapped, err := st.Candidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Candidate: %v", err)
	}
	if swapped.Start != 100 || swapped.End != 130 || swapped.Description != "Alternate take" {
		t.Fatalf("primary not replaced: %+v", swapped)
	}
	if swapped.Alternative == nil || swapped.Alternative.Start != 10 || swapped.Alternative.End != 40 {
		t.Fatalf("previous primary not preserved as alternative: %+v", swapped.Alternative)
	}

	if err := st.SwapAlternative(ctx, "cand-1"); err != nil {
		t.Fatalf("second SwapAlternative: %v", err)
	}
	restored, err := st.Candidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Candidate: %v", err)
	}
	if restored.Start != 10 || restored.End != 40 || restored.Description != "Aerial skyline shot" {
		t.Errorf("double swap did not restore original: %+v", restored)
	}
}

func TestSwapAlternativeWithoutAlternativeIsNoOp(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	if err := st.AppendCandidate(ctx, newCandidate("cand-1", "sec-1")); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}
	if err := st.SwapAlternative(ctx, "cand-1"); err != nil {
		t.Fatalf("SwapAlternative: %v", err)
	}
	got, err := st.Candidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Candidate: %v", err)
	}
	if got.Start != 10 || got.End != 40 || got.Alternative != nil {
		t.Errorf("no-op swap changed candidate: %+v", got)
	}
}

func TestMarkedStats(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	stats, err := st.MarkedStats(ctx)
	if err != nil {
		t.Fatalf("MarkedStats: %v", err)
	}
	if stats.Count != 0 || stats.TotalSeconds != 0 {
		t.Fatalf("empty store stats: %+v", stats)
	}

	candidate := newCandidate("cand-1", "sec-1")
	candidate.MarkedForDownload = true
	if err := st.AppendCandidate(ctx, candidate); err != nil {
		t.Fatalf("AppendCandidate: %v", err)
	}

	stats, err = st.MarkedStats(ctx)
	if err != nil {
		t.Fatalf("MarkedStats: %v", err)
	}
	if stats.Count != 1 || stats.TotalSeconds != 30 {
		t.Errorf("stats: got count=%d total=%d, want 1/30", stats.Count, stats.TotalSeconds)
	}
}

func TestMarkAll(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := st.AppendCandidate(ctx, newCandidate(fmt.Sprintf("cand-%d", i), "sec-1")); err != nil {
			t.Fatalf("AppendCandidate: %v", err)
		}
	}
	if err := st.Remove(ctx, "cand-2"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	changed, err := st.MarkAll(ctx)
	if err != nil {
		t.Fatalf("MarkAll: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 candidates marked, got %d", changed)
	}

	marked, err := st.MarkedCandidates(ctx)
	if err != nil {
		t.Fatalf("MarkedCandidates: %v", err)
	}
	if len(marked) != 2 {
		t.Errorf("marked set: got %d", len(marked))
	}
}

func TestMarkedCandidatesOrderedBySectionThenInsertion(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	testsupport.MustLoadDocument(t, st, twoSectionDocument())
	ctx := context.Background()

	// Insert out of section order.
	for _, spec := range []struct{ id, sectionID string }{
		{"cand-outro", "sec-2"},
		{"cand-intro-a", "sec-1"},
		{"cand-intro-b", "sec-1"},
	} {
		candidate := newCandidate(spec.id, spec.sectionID)
		candidate.MarkedForDownload = true
		if err := st.AppendCandidate(ctx, candidate); err != nil {
			t.Fatalf("AppendCandidate %s: %v", spec.id, err)
		}
	}

	marked, err := st.MarkedCandidates(ctx)
	if err != nil {
		t.Fatalf("MarkedCandidates: %v", err)
	}
	gotIDs := make([]string, 0, len(marked))
	for _, candidate := range marked {
		gotIDs = append(gotIDs, candidate.ID)
	}
	want := []string{"cand-intro-a", "cand-intro-b", "cand-outro"}
	for i := range want {
		if i >= len(gotIDs) || gotIDs[i] != want[i] {
			t.Fatalf("order: got %v want %v", gotIDs, want)
		}
	}
}
