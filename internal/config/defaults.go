package config

const (
	defaultLogDir            = "~/.local/share/broll/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultAnthropicBaseURL  = "https://api.anthropic.com"
	defaultAnthropicModel    = "claude-sonnet-4-20250514"
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	defaultGeminiModel       = "gemini-2.5-flash"
	defaultYouTubeBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultSearchesPerSecond = 5.0
	defaultSearchLimit       = 5
	defaultExportDir         = "~/broll_exports"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LogDir: defaultLogDir,
		Anthropic: Anthropic{
			BaseURL: defaultAnthropicBaseURL,
			Model:   defaultAnthropicModel,
		},
		Gemini: Gemini{
			BaseURL: defaultGeminiBaseURL,
			Model:   defaultGeminiModel,
		},
		YouTube: YouTube{
			BaseURL:           defaultYouTubeBaseURL,
			SearchesPerSecond: defaultSearchesPerSecond,
		},
		Discovery: Discovery{
			SearchLimit: defaultSearchLimit,
		},
		Export: Export{
			OutputDir: defaultExportDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
