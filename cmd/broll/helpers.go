package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

// loadDocument reads and parses a narration script. When the script carries
// no title line, one is derived from the file name.
func loadDocument(path string) (*script.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	parser := script.NewParser(script.NewUUIDGenerator())
	doc := parser.Parse(string(raw))
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("no sections found in %s; add headings, dividers, or paragraphs", path)
	}
	if doc.Title == "" {
		doc.Title = deriveTitle(path)
	}
	return doc, nil
}

// deriveTitle turns a script file name into a readable document title.
func deriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Untitled Script"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Script"
	}
	return cases.Title(language.Und).String(title)
}

// formatClipRange renders start/end seconds as m:ss-m:ss for tables.
func formatClipRange(start, end int) string {
	return formatSeconds(start) + "-" + formatSeconds(end)
}

func formatSeconds(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
