// Package ideas wraps the Anthropic messages API used for B-roll ideation:
// generating search queries for a narration section and suggesting queries
// for user-selected text.
package ideas

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
	defaultBaseURL     = "https://api.anthropic.com"
	defaultModel       = "claude-sonnet-4-20250514"
	defaultMaxTokens   = 1024
	apiVersion         = "2023-06-01"
	defaultHTTPTimeout = 30 * time.Second

	ideaCount       = 3
	suggestionCount = 4
)

// Client wraps the Anthropic messages endpoint.
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

// NewClient constructs an ideation client.
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

// Suggestion is one proposed search query with the model's rationale. Type
// is empty for selected-text suggestions, which carry no classification.
type Suggestion struct {
	Type      string `json:"type"`
	Query     string `json:"query"`
	Reasoning string `json:"reasoning"`
}

// GenerateIdeas asks the model for exactly three search queries for one
// narration section: one literal, one abstract, one entity.
func (c *Client) GenerateIdeas(ctx context.Context, sectionText string) ([]Suggestion, error) {
	const op = "generate ideas"
	sectionText = strings.TrimSpace(sectionText)
	if sectionText == "" {
		return nil, services.Wrap(services.ErrValidation, "ideation", op, "section text required", nil)
	}

	suggestions, err := c.complete(ctx, op, buildIdeasPrompt(sectionText))
	if err != nil {
		return nil, err
	}
	if len(suggestions) != ideaCount {
		return nil, services.Wrap(services.ErrService, "ideation", op,
			fmt.Sprintf("expected %d ideas, got %d", ideaCount, len(suggestions)), nil)
	}
	for _, suggestion := range suggestions {
		if strings.TrimSpace(suggestion.Type) == "" || strings.TrimSpace(suggestion.Query) == "" {
			return nil, services.Wrap(services.ErrService, "ideation", op, "incomplete suggestion in response", nil)
		}
	}
	return suggestions, nil
}

// SuggestQueries asks the model for four search queries matching text the
// user selected from the script.
func (c *Client) SuggestQueries(ctx context.Context, selectedText string) ([]Suggestion, error) {
	const op = "suggest queries"
	selectedText = strings.TrimSpace(selectedText)
	if selectedText == "" {
		return nil, services.Wrap(services.ErrValidation, "ideation", op, "selected text required", nil)
	}

	suggestions, err := c.complete(ctx, op, buildSuggestPrompt(selectedText))
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 || len(suggestions) > suggestionCount {
		return nil, services.Wrap(services.ErrService, "ideation", op,
			fmt.Sprintf("expected 1-%d suggestions, got %d", suggestionCount, len(suggestions)), nil)
	}
	for _, suggestion := range suggestions {
		if strings.TrimSpace(suggestion.Query) == "" {
			return nil, services.Wrap(services.ErrService, "ideation", op, "suggestion without query", nil)
		}
	}
	return suggestions, nil
}

func (c *Client) complete(ctx context.Context, op, prompt string) ([]Suggestion, error) {
	if c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "ideation", op, "api key required", nil)
	}

	payload := messagesRequest{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrService, "ideation", op, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrService, "ideation", op, "build request", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrService, "ideation", op, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrService, "ideation", op, "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrService, "ideation", op,
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var decoded messagesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, services.Wrap(services.ErrService, "ideation", op, "decode response", err)
	}
	text := decoded.text()
	if text == "" {
		return nil, services.Wrap(services.ErrService, "ideation", op, "empty completion", nil)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(services.StripCodeFences(text)), &suggestions); err != nil {
		return nil, services.Wrap(services.ErrService, "ideation", op, "parse completion", err)
	}
	return suggestions, nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r messagesResponse) text() string {
	for _, block := range r.Content {
		if text := strings.TrimSpace(block.Text); text != "" {
			return text
		}
	}
	return ""
}
