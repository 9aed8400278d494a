package script

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// shortParagraphRunes is the minimum body length for the paragraph strategy;
// anything shorter is merged into the following section.
const shortParagraphRunes = 20

var (
	titlePattern   = regexp.MustCompile(`^#\s+(.+)$`)
	headingPattern = regexp.MustCompile(`^##\s+(.+)$`)
	dividerPattern = regexp.MustCompile(`^\s*(-{3,}|\*{3,}|_{3,})\s*$`)
)

// Parser turns raw script text into a Document. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	newID IDGenerator
}

// NewParser builds a parser using the supplied ID generator. A nil generator
// falls back to random UUIDs.
func NewParser(newID IDGenerator) *Parser {
	if newID == nil {
		newID = NewUUIDGenerator()
	}
	return &Parser{newID: newID}
}

// Parse converts raw text into a Document. It never fails: malformed input
// degrades to a best-effort structure, and input with no extractable
// sections yields a Document with an empty section list.
func (p *Parser) Parse(raw string) *Document {
	title, body := extractTitle(raw)

	sections := p.splitByHeadings(body)
	if len(sections) == 0 {
		sections = p.splitByDividers(body)
	}
	if len(sections) == 0 {
		sections = p.splitByParagraphs(body)
	}

	kept := make([]*Section, 0, len(sections))
	for _, section := range sections {
		ideas, stripped := p.extractAnnotations(section.Text)
		section.Ideas = append(section.Ideas, ideas...)
		section.Text = strings.TrimSpace(stripped)
		if section.Text == "" {
			continue
		}
		if strings.ToUpper(section.Heading) == SourceClipHeading {
			section.Kind = KindSourceClip
		}
		kept = append(kept, section)
	}

	for i, section := range kept {
		section.Index = i
	}

	return &Document{Title: title, Sections: kept}
}

// extractTitle pulls the document title out of the raw text and returns the
// remainder the section strategies operate on. The first level-1 heading
// wins; without one, the first non-blank line becomes the title unless it is
// itself a section marker.
func extractTitle(raw string) (string, string) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if match := titlePattern.FindStringSubmatch(line); match != nil {
			rest := append(append([]string{}, lines[:i]...), lines[i+1:]...)
			return strings.TrimSpace(match[1]), strings.Join(rest, "\n")
		}
	}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if headingPattern.MatchString(line) || dividerPattern.MatchString(line) {
			break
		}
		return trimmed, strings.Join(lines[i+1:], "\n")
	}
	return "", raw
}

func (p *Parser) newSection(heading string) *Section {
	return &Section{
		ID:      p.newID(),
		Kind:    KindNarration,
		Heading: heading,
	}
}

// splitByHeadings implements the header strategy: each ## line starts a new
// section whose heading is the header text verbatim. Text before the first
// heading is discarded.
func (p *Parser) splitByHeadings(body string) []*Section {
	var sections []*Section
	var current *Section
	var buf strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Text = buf.String()
		sections = append(sections, current)
		buf.Reset()
	}

	for _, line := range strings.Split(body, "\n") {
		if match := headingPattern.FindStringSubmatch(line); match != nil {
			flush()
			current = p.newSection(strings.TrimSpace(match[1]))
			continue
		}
		if current != nil {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()

	return sections
}

// splitByDividers implements the divider strategy: horizontal-rule lines
// separate auto-labeled sections.
func (p *Parser) splitByDividers(body string) []*Section {
	var chunks []string
	var buf strings.Builder
	sawDivider := false

	for _, line := range strings.Split(body, "\n") {
		if dividerPattern.MatchString(line) {
			sawDivider = true
			chunks = append(chunks, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	chunks = append(chunks, buf.String())

	if !sawDivider {
		return nil
	}
	return p.labelChunks(chunks)
}

// splitByParagraphs implements the paragraph strategy: blank-line-delimited
// paragraphs become sections, except that any paragraph shorter than the
// minimum length is merged into the one after it.
func (p *Parser) splitByParagraphs(body string) []*Section {
	var chunks []string
	var buf strings.Builder

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			if strings.TrimSpace(buf.String()) != "" {
				chunks = append(chunks, buf.String())
			}
			buf.Reset()
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	if strings.TrimSpace(buf.String()) != "" {
		chunks = append(chunks, buf.String())
	}

	merged := make([]string, 0, len(chunks))
	for i := 0; i < len(chunks); i++ {
		text := strings.TrimSpace(chunks[i])
		if utf8.RuneCountInString(text) < shortParagraphRunes && i+1 < len(chunks) {
			chunks[i+1] = text + "\n\n" + chunks[i+1]
			continue
		}
		merged = append(merged, chunks[i])
	}

	return p.labelChunks(merged)
}

// labelChunks builds auto-labeled sections from raw text chunks, skipping
// blank ones so labels stay sequential.
func (p *Parser) labelChunks(chunks []string) []*Section {
	var sections []*Section
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		section := p.newSection(fmt.Sprintf("SECTION %d", len(sections)+1))
		section.Text = chunk
		sections = append(sections, section)
	}
	return sections
}
