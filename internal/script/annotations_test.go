package script_test

import (
	"strings"
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

const annotatedSection = `## Opening
The rocket lifted off at dawn.
<!-- BROLL
- type: literal
  query: "rocket launch at sunrise"
  reasoning: direct visual match
- type: abstract
  query: new beginnings time lapse
- type: entity
  query: "SpaceX Falcon 9"
-->
The crowd held its breath.`

func TestParseExtractsAnnotationIdeas(t *testing.T) {
	doc := newTestParser().Parse(annotatedSection)

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	section := doc.Sections[0]
	if len(section.Ideas) != 3 {
		t.Fatalf("expected 3 ideas, got %d", len(section.Ideas))
	}

	first := section.Ideas[0]
	if first.Type != script.IdeaLiteral {
		t.Errorf("first idea type: got %q", first.Type)
	}
	if first.Query != "rocket launch at sunrise" {
		t.Errorf("first idea query: got %q", first.Query)
	}
	if first.Reasoning != "direct visual match" {
		t.Errorf("first idea reasoning: got %q", first.Reasoning)
	}
	if section.Ideas[1].Reasoning != "" {
		t.Errorf("expected empty reasoning, got %q", section.Ideas[1].Reasoning)
	}
	if section.Ideas[2].Type != script.IdeaEntity {
		t.Errorf("third idea type: got %q", section.Ideas[2].Type)
	}

	if strings.Contains(section.Text, "BROLL") {
		t.Errorf("annotation block not stripped: %q", section.Text)
	}
	if !strings.Contains(section.Text, "rocket lifted off") || !strings.Contains(section.Text, "held its breath") {
		t.Errorf("surrounding text damaged: %q", section.Text)
	}
	if section.Eligible() {
		t.Error("section with parsed ideas must not be eligible for discovery")
	}
}

func TestParseDropsMalformedAnnotationEntries(t *testing.T) {
	raw := `## One
Narration text around the block.
<!-- BROLL
- type: literal
- query: orphan query without a type
- type: sideways
  query: unknown type entry
- type: abstract
  query: the only valid entry
-->`

	doc := newTestParser().Parse(raw)

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	ideas := doc.Sections[0].Ideas
	if len(ideas) != 1 {
		t.Fatalf("expected 1 idea, got %d", len(ideas))
	}
	if ideas[0].Type != script.IdeaAbstract || ideas[0].Query != "the only valid entry" {
		t.Errorf("unexpected surviving idea: %+v", ideas[0])
	}
}

func TestParseStrippedTextYieldsNoIdeasOnReparse(t *testing.T) {
	parser := newTestParser()

	first := parser.Parse(annotatedSection)
	if len(first.Sections) != 1 || len(first.Sections[0].Ideas) == 0 {
		t.Fatalf("setup: expected ideas from annotated input")
	}

	second := parser.Parse("## Opening\n" + first.Sections[0].Text)
	if len(second.Sections) != 1 {
		t.Fatalf("expected 1 section on reparse, got %d", len(second.Sections))
	}
	if len(second.Sections[0].Ideas) != 0 {
		t.Fatalf("reparse rediscovered %d ideas", len(second.Sections[0].Ideas))
	}
	if second.Sections[0].Text != first.Sections[0].Text {
		t.Errorf("stripped text not stable across reparse")
	}
}
