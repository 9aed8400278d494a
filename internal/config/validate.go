package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateKey(c.Anthropic.APIKey, "anthropic.api_key", "ANTHROPIC_API_KEY"); err != nil {
		return err
	}
	if err := c.validateKey(c.Gemini.APIKey, "gemini.api_key", "GEMINI_API_KEY"); err != nil {
		return err
	}
	if err := c.validateKey(c.YouTube.APIKey, "youtube.api_key", "YOUTUBE_API_KEY"); err != nil {
		return err
	}
	if c.Transcript.ProviderURL == "" {
		return fmt.Errorf("transcript.provider_url is required (edit %s)", c.configHint())
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateKey(value, field, envVar string) error {
	if value != "" {
		return nil
	}
	return fmt.Errorf("%s is required. Set %s env var or edit %s (create with 'broll config init')", field, envVar, c.configHint())
}

func (c *Config) configHint() string {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "~/.config/broll/config.toml"
	}
	return defaultPath
}
