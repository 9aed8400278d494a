package ideas

import "fmt"

func buildIdeasPrompt(sectionText string) string {
	return fmt.Sprintf(`You are a B-roll researcher for a YouTube channel.

Given this narration section from a script, suggest exactly 3 YouTube search queries to find good B-roll footage.

SECTION TEXT:
%q

Return exactly 3 suggestions:

1. LITERAL - Search for the actual subject being discussed. What would you literally see if you were there?

2. ABSTRACT - Search for a visual metaphor or conceptual image. What visual represents the IDEA being discussed?

3. ENTITY - Search for a specific person, company, or institution that is highly relevant to this section.

For each, provide:
- type: literal | abstract | entity
- query: YouTube search query (English, 3-6 words, specific enough to find relevant footage, not news anchors)
- reasoning: one sentence explaining why this visual works

Return as JSON array. No markdown fences.`, sectionText)
}

func buildSuggestPrompt(selectedText string) string {
	return fmt.Sprintf(`The user selected this text from a YouTube script:
%q

Suggest 4 YouTube search queries that would find good B-roll footage related to this text. Queries should be in English, 3-6 words, and specific enough to find relevant video footage (not news anchors talking).

Return JSON array (no markdown fences):
[
  { "query": "<search query>", "reasoning": "<why this works>" }
]`, selectedText)
}
