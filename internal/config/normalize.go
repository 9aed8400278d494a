package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.LogDir, err = ExpandPath(firstNonEmpty(c.LogDir, defaultLogDir)); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	if c.Export.OutputDir, err = ExpandPath(firstNonEmpty(c.Export.OutputDir, defaultExportDir)); err != nil {
		return fmt.Errorf("export.output_dir: %w", err)
	}

	c.Anthropic.APIKey = firstNonEmpty(os.Getenv("ANTHROPIC_API_KEY"), c.Anthropic.APIKey)
	c.Anthropic.BaseURL = strings.TrimRight(firstNonEmpty(c.Anthropic.BaseURL, defaultAnthropicBaseURL), "/")
	c.Anthropic.Model = firstNonEmpty(c.Anthropic.Model, defaultAnthropicModel)

	c.Gemini.APIKey = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), c.Gemini.APIKey)
	c.Gemini.BaseURL = strings.TrimRight(firstNonEmpty(c.Gemini.BaseURL, defaultGeminiBaseURL), "/")
	c.Gemini.Model = firstNonEmpty(c.Gemini.Model, defaultGeminiModel)

	c.YouTube.APIKey = firstNonEmpty(os.Getenv("YOUTUBE_API_KEY"), c.YouTube.APIKey)
	c.YouTube.BaseURL = strings.TrimRight(firstNonEmpty(c.YouTube.BaseURL, defaultYouTubeBaseURL), "/")
	if c.YouTube.SearchesPerSecond <= 0 {
		c.YouTube.SearchesPerSecond = defaultSearchesPerSecond
	}

	c.Transcript.ProviderURL = strings.TrimRight(strings.TrimSpace(c.Transcript.ProviderURL), "/")

	if c.Discovery.SearchLimit <= 0 {
		c.Discovery.SearchLimit = defaultSearchLimit
	}

	c.Logging.Format = strings.ToLower(firstNonEmpty(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(firstNonEmpty(c.Logging.Level, defaultLogLevel))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
