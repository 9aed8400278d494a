// Package segment wraps the Gemini generateContent API used to locate
// time-bounded footage inside a video transcript, either for a pipeline
// search intent or a freeform user prompt.
package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-2.5-flash"
	defaultHTTPTimeout = 30 * time.Second

	maxFreeformMatches = 3
)

// Client wraps the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// NewClient constructs a segment-localization client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Alternative is the deferred second pick returned alongside a primary
// localization.
type Alternative struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"description"`
}

// Localization is the model's best segment for a search intent.
type Localization struct {
	Start       int          `json:"start"`
	End         int          `json:"end"`
	Confidence  string       `json:"confidence"`
	Description string       `json:"description"`
	Alternative *Alternative `json:"alternative"`
}

// FreeformMatch is one segment matching a freeform user prompt.
type FreeformMatch struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Confidence  string `json:"confidence"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
}

// LocalizeSegment finds the single best segment in the transcript for the
// given search intent, plus an optional alternative.
func (c *Client) LocalizeSegment(ctx context.Context, sectionText, query, reasoning string, transcript []services.TranscriptSegment) (Localization, error) {
	const op = "localize segment"
	var empty Localization
	if strings.TrimSpace(query) == "" {
		return empty, services.Wrap(services.ErrValidation, "localization", op, "query required", nil)
	}
	if len(transcript) == 0 {
		return empty, services.Wrap(services.ErrValidation, "localization", op, "transcript required", nil)
	}

	text, err := c.generate(ctx, op, buildLocalizePrompt(sectionText, query, reasoning, services.FormatTranscript(transcript)))
	if err != nil {
		return empty, err
	}

	var located Localization
	if err := json.Unmarshal([]byte(services.StripCodeFences(text)), &located); err != nil {
		return empty, services.Wrap(services.ErrService, "localization", op, "parse completion", err)
	}
	if located.Start < 0 || located.End <= located.Start {
		return empty, services.Wrap(services.ErrService, "localization", op,
			fmt.Sprintf("invalid segment bounds %d-%d", located.Start, located.End), nil)
	}
	if located.Alternative != nil && located.Alternative.End <= located.Alternative.Start {
		located.Alternative = nil
	}
	return located, nil
}

// LocalizeFreeform finds up to three segments matching a freeform user
// prompt. An empty result list is a valid outcome.
func (c *Client) LocalizeFreeform(ctx context.Context, userPrompt string, transcript []services.TranscriptSegment) ([]FreeformMatch, error) {
	const op = "localize freeform"
	if strings.TrimSpace(userPrompt) == "" {
		return nil, services.Wrap(services.ErrValidation, "localization", op, "prompt required", nil)
	}
	if len(transcript) == 0 {
		return nil, services.Wrap(services.ErrValidation, "localization", op, "transcript required", nil)
	}

	text, err := c.generate(ctx, op, buildFreeformPrompt(userPrompt, services.FormatTranscript(transcript)))
	if err != nil {
		return nil, err
	}

	var matches []FreeformMatch
	if err := json.Unmarshal([]byte(services.StripCodeFences(text)), &matches); err != nil {
		return nil, services.Wrap(services.ErrService, "localization", op, "parse completion", err)
	}
	if len(matches) > maxFreeformMatches {
		matches = matches[:maxFreeformMatches]
	}
	valid := matches[:0]
	for _, match := range matches {
		if match.Start >= 0 && match.End > match.Start {
			valid = append(valid, match)
		}
	}
	return valid, nil
}

func (c *Client) generate(ctx context.Context, op, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "localization", op, "api key required", nil)
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrService, "localization", op, "encode request", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrService, "localization", op, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrService, "localization", op, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrService, "localization", op, "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrService, "localization", op,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", services.Wrap(services.ErrService, "localization", op, "decode response", err)
	}
	text := decoded.text()
	if text == "" {
		return "", services.Wrap(services.ErrService, "localization", op, "empty completion", nil)
	}
	return text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r generateResponse) text() string {
	for _, candidate := range r.Candidates {
		for _, p := range candidate.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
