package config

import "os"

type AnthropicConfig struct {
	ApiUrl  string
	ApiKey  string
	Model   string
	Version string
}

// GetAnthropicConfig returns nil without error when no Anthropic key is
// present.
func GetAnthropicConfig() *AnthropicConfig {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}
	apiUrl := os.Getenv("ANTHROPIC_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.anthropic.com/v1/messages"
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-3-5-sonnet-20240620"
	}
	return &AnthropicConfig{
		ApiUrl:  apiUrl,
		ApiKey:  apiKey,
		Model:   model,
		Version: "2023-06-01",
	}
}
