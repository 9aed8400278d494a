package script_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

func newTestParser() *script.Parser {
	n := 0
	return script.NewParser(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func TestParseHeaderStrategy(t *testing.T) {
	raw := "# My Video\n\n## Intro\nWelcome to the channel.\n\n## Middle\nThe main argument goes here.\n\n## Outro\nThanks for watching."

	doc := newTestParser().Parse(raw)

	if doc.Title != "My Video" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	wantHeadings := []string{"Intro", "Middle", "Outro"}
	for i, section := range doc.Sections {
		if section.Heading != wantHeadings[i] {
			t.Errorf("section %d heading: got %q want %q", i, section.Heading, wantHeadings[i])
		}
		if section.Kind != script.KindNarration {
			t.Errorf("section %d kind: got %q", i, section.Kind)
		}
	}
	if doc.Sections[0].Text != "Welcome to the channel." {
		t.Errorf("unexpected intro text: %q", doc.Sections[0].Text)
	}
}

func TestParseHeaderStrategySectionCountMatchesHeadings(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "## Part %d\nBody text for part %d.\n\n", i, i)
	}

	doc := newTestParser().Parse(b.String())

	if len(doc.Sections) != 7 {
		t.Fatalf("expected 7 sections, got %d", len(doc.Sections))
	}
}

func TestParseDividerStrategy(t *testing.T) {
	raw := "First block of narration text.\n---\nSecond block of narration text.\n***\nThird block of narration text."

	doc := newTestParser().Parse(raw)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	// The first non-blank line became the title, leaving two blocks.
	if doc.Title != "First block of narration text." {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	for i, section := range doc.Sections {
		want := fmt.Sprintf("SECTION %d", i+1)
		if section.Heading != want {
			t.Errorf("section %d heading: got %q want %q", i, section.Heading, want)
		}
	}
}

func TestParseDividerStrategyWithTitle(t *testing.T) {
	raw := "# Scripted\nAlpha block with enough text.\n---\nBeta block with enough text.\n___\nGamma block with enough text."

	doc := newTestParser().Parse(raw)

	if doc.Title != "Scripted" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[2].Heading != "SECTION 3" {
		t.Errorf("unexpected heading: %q", doc.Sections[2].Heading)
	}
}

func TestParseParagraphStrategyMergesShortParagraphs(t *testing.T) {
	raw := "# Title\n\nThis opening paragraph is comfortably long enough.\n\nTiny one.\n\nThe tiny paragraph above should be merged into this longer paragraph."

	doc := newTestParser().Parse(raw)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if !strings.Contains(doc.Sections[1].Text, "Tiny one.") {
		t.Errorf("short paragraph not merged forward: %q", doc.Sections[1].Text)
	}
	if !strings.Contains(doc.Sections[1].Text, "merged into this longer paragraph") {
		t.Errorf("target paragraph missing: %q", doc.Sections[1].Text)
	}
	if doc.Sections[0].Heading != "SECTION 1" || doc.Sections[1].Heading != "SECTION 2" {
		t.Errorf("labels not sequential: %q %q", doc.Sections[0].Heading, doc.Sections[1].Heading)
	}
}

func TestParseParagraphStrategyFinalShortParagraphKept(t *testing.T) {
	raw := "# Title\n\nA long enough opening paragraph sits here at the start.\n\nShort tail."

	doc := newTestParser().Parse(raw)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[1].Text != "Short tail." {
		t.Errorf("final short paragraph altered: %q", doc.Sections[1].Text)
	}
}

func TestParseTitleFallbackFirstNonBlankLine(t *testing.T) {
	raw := "My narration script\n\nThe only real paragraph of narration in this file."

	doc := newTestParser().Parse(raw)

	if doc.Title != "My narration script" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
}

func TestParseSourceClipSection(t *testing.T) {
	raw := "# Title\n## Intro\nHello world, welcome back.\n## SOURCE_CLIP\nraw clip notes to keep verbatim"

	doc := newTestParser().Parse(raw)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	clip := doc.Sections[1]
	if clip.Kind != script.KindSourceClip {
		t.Fatalf("expected source clip kind, got %q", clip.Kind)
	}
	if clip.Eligible() {
		t.Error("source clip must not be eligible for discovery")
	}
	if !doc.Sections[0].Eligible() {
		t.Error("narration section without ideas must be eligible")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   \n\n  ", "# Only A Title"} {
		doc := newTestParser().Parse(raw)
		if len(doc.Sections) != 0 {
			t.Errorf("Parse(%q): expected no sections, got %d", raw, len(doc.Sections))
		}
	}
}

func TestParseIndexMatchesPosition(t *testing.T) {
	raw := "# T\n## A\nAlpha body.\n## B\n<!-- BROLL\n- type: literal\n  query: something\n-->\n## C\nCharlie body."

	// Section B's text is empty after stripping, so it must be dropped and
	// the remainder re-indexed.
	doc := newTestParser().Parse(raw)

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	for i, section := range doc.Sections {
		if section.Index != i {
			t.Errorf("section %q index: got %d want %d", section.Heading, section.Index, i)
		}
	}
	if doc.Sections[0].Heading != "A" || doc.Sections[1].Heading != "C" {
		t.Errorf("unexpected headings: %q %q", doc.Sections[0].Heading, doc.Sections[1].Heading)
	}
}

func TestParseAssignsUniqueSectionIDs(t *testing.T) {
	doc := newTestParser().Parse("## One\nFirst body.\n## Two\nSecond body.")

	seen := map[string]bool{}
	for _, section := range doc.Sections {
		if section.ID == "" {
			t.Fatal("section without ID")
		}
		if seen[section.ID] {
			t.Fatalf("duplicate section ID %q", section.ID)
		}
		seen[section.ID] = true
	}
}
