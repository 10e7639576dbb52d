package config

import "os"

type GptConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

// GetGptConfig returns nil without error when no OpenAI key is present;
// provider selection is capability-checked at startup.
func GetGptConfig() *GptConfig {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	apiUrl := os.Getenv("OPENAI_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.openai.com/v1/chat/completions"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &GptConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}
}
