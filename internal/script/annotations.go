package script

import (
	"regexp"
	"strings"
)

var (
	annotationPattern = regexp.MustCompile(`(?s)<!--\s*BROLL\s*(.*?)-->`)
	entryPattern      = regexp.MustCompile(`\n\s*-\s+`)
	typeFieldPattern  = regexp.MustCompile(`type:\s*(\w+)`)
	queryFieldPattern = regexp.MustCompile(`query:\s*["']?([^"'\n]+)["']?`)
	reasonFieldRegex  = regexp.MustCompile(`reasoning:\s*["']?([^"'\n]+)["']?`)
)

// extractAnnotations parses all <!-- BROLL --> blocks embedded in section
// text into ideas and returns the text with the blocks removed. Malformed
// entries are dropped silently; the block syntax never causes a parse error.
func (p *Parser) extractAnnotations(text string) ([]Idea, string) {
	var ideas []Idea
	for _, match := range annotationPattern.FindAllStringSubmatch(text, -1) {
		ideas = append(ideas, p.parseAnnotationBlock(match[1])...)
	}
	stripped := annotationPattern.ReplaceAllString(text, "")
	return ideas, stripped
}

// parseAnnotationBlock reads the YAML-like list inside one BROLL block.
// Each entry needs a recognized type and a query; reasoning is optional.
func (p *Parser) parseAnnotationBlock(block string) []Idea {
	var ideas []Idea
	for _, entry := range entryPattern.Split("\n"+block, -1) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		typeMatch := typeFieldPattern.FindStringSubmatch(entry)
		queryMatch := queryFieldPattern.FindStringSubmatch(entry)
		if typeMatch == nil || queryMatch == nil {
			continue
		}
		ideaType, ok := parseIdeaType(typeMatch[1])
		if !ok {
			continue
		}
		reasoning := ""
		if reasonMatch := reasonFieldRegex.FindStringSubmatch(entry); reasonMatch != nil {
			reasoning = strings.TrimSpace(reasonMatch[1])
		}
		ideas = append(ideas, Idea{
			ID:        p.newID(),
			Type:      ideaType,
			Query:     strings.TrimSpace(queryMatch[1]),
			Reasoning: reasoning,
		})
	}
	return ideas
}

func parseIdeaType(value string) (IdeaType, bool) {
	switch IdeaType(strings.ToLower(strings.TrimSpace(value))) {
	case IdeaLiteral:
		return IdeaLiteral, true
	case IdeaAbstract:
		return IdeaAbstract, true
	case IdeaEntity:
		return IdeaEntity, true
	default:
		return "", false
	}
}
