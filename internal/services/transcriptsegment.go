package services

import (
	"fmt"
	"strings"
)

// TranscriptSegment is one timed line of a video transcript. Start and
// Duration are seconds.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// FormatTranscript renders timed segments as "[m:ss] text" lines, the shape
// the localization prompts expect.
func FormatTranscript(segments []TranscriptSegment) string {
	lines := make([]string, 0, len(segments))
	for _, segment := range segments {
		mins := int(segment.Start) / 60
		secs := int(segment.Start) % 60
		lines = append(lines, fmt.Sprintf("[%d:%02d] %s", mins, secs, segment.Text))
	}
	return strings.Join(lines, "\n")
}

// StripCodeFences removes a wrapping markdown code fence from model output.
// Providers intermittently fence their JSON despite instructions not to.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		first := strings.TrimSpace(trimmed[:newline])
		if first == "" || strings.EqualFold(first, "json") {
			trimmed = trimmed[newline+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
