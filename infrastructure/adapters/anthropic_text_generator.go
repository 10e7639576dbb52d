package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/config"
	"github.com/gbessoni/selfie-fm/domain"
)

const anthropicSystemPrompt = "You are a professional copywriter and voice coach for creators. " +
	"Your job is to write compelling 10-second voice intros that convert listeners into clickers. " +
	"You write in a conversational, spoken tone. You focus on specific benefits, building trust, " +
	"and creating urgency. You never use corporate jargon. You never make false promises. " +
	"Every script you write should feel authentic and natural when spoken aloud."

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicTextGenerator struct {
	logger          outbound.LoggerPort
	client          *http.Client
	anthropicConfig *config.AnthropicConfig
}

func NewAnthropicTextGenerator(anthropicConfig *config.AnthropicConfig, logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &anthropicTextGenerator{
		logger:          logger,
		client:          &http.Client{Timeout: 30 * time.Second},
		anthropicConfig: anthropicConfig,
	}
}

func (a *anthropicTextGenerator) Name() string {
	return "anthropic"
}

func (a *anthropicTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:       a.anthropicConfig.Model,
		MaxTokens:   500,
		Temperature: 0.8,
		System:      anthropicSystemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		a.logger.Error(err, "Failed to marshal the Anthropic request body")
		return "", domain.NewError(domain.ErrorGenerationProvider, "failed to build Anthropic request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.anthropicConfig.ApiUrl, bytes.NewBuffer(payload))
	if err != nil {
		return "", domain.NewError(domain.ErrorGenerationProvider, "failed to build Anthropic request", err)
	}
	req.Header.Set("x-api-key", a.anthropicConfig.ApiKey)
	req.Header.Set("anthropic-version", a.anthropicConfig.Version)
	req.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		a.logger.Error(err, "Anthropic request failed")
		return "", domain.NewError(domain.ErrorGenerationProvider, "Anthropic request failed", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			a.logger.Error(err, "Failed to close the Anthropic response body")
		}
	}()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		a.logger.ErrorWithFields(nil, "Anthropic returned non-OK status code", map[string]interface{}{
			"status":  res.StatusCode,
			"message": string(body),
		})
		return "", domain.Errorf(domain.ErrorGenerationProvider, "Anthropic returned status %d", res.StatusCode)
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", domain.NewError(domain.ErrorGenerationProvider, "failed to decode Anthropic response", err)
	}
	if len(parsed.Content) == 0 {
		return "", nil
	}
	return parsed.Content[0].Text, nil
}
