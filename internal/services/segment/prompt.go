package segment

import "fmt"

func buildLocalizePrompt(sectionText, query, reasoning, formattedTranscript string) string {
	if sectionText == "" {
		sectionText = "N/A"
	}
	if reasoning == "" {
		reasoning = query
	}
	return fmt.Sprintf(`You are analyzing a YouTube video transcript to find the best B-roll segment for a video.

CONTEXT: The script section this B-roll is for:
%q

SEARCH INTENT: %q
We want footage of: %s

VIDEO TRANSCRIPT (timestamped):
%s

Find the single best segment (10-60 seconds) that matches the search intent. Prioritize visual moments over talking.

Return JSON (no markdown fences):
{
  "start": <seconds>,
  "end": <seconds>,
  "confidence": "high" | "medium" | "low",
  "description": "<what happens in this segment>",
  "alternative": {
    "start": <seconds>,
    "end": <seconds>,
    "description": "<what happens in this segment>"
  }
}

Rules:
- Always return a primary pick AND one alternative
- Prefer moments with visual action over static talking
- Confidence: "high" if transcript clearly matches, "medium" if likely but uncertain, "low" if guessing
- If nothing matches well, say so in description`, sectionText, query, reasoning, formattedTranscript)
}

func buildFreeformPrompt(userPrompt, formattedTranscript string) string {
	return fmt.Sprintf(`The user wants to find a specific moment in this YouTube video.

USER PROMPT: %q

VIDEO TRANSCRIPT (timestamped):
%s

Find 1-3 segments that best match what the user is looking for. Each segment should be 10-60 seconds.

Return JSON array (no markdown fences):
[
  {
    "start": <seconds>,
    "end": <seconds>,
    "confidence": "high" | "medium" | "low",
    "description": "<what happens>",
    "excerpt": "<relevant transcript text>"
  }
]

Rules:
- Return up to 3 matches, ranked by relevance
- If nothing matches, return empty array
- Include the actual transcript text in "excerpt"`, userPrompt, formattedTranscript)
}
