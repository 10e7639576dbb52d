package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donovanhide/eventsource"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/config"
	"github.com/gbessoni/selfie-fm/domain"
)

const doneSignal = "[DONE]"

// openAiRequestTimeout bounds the whole streaming call, matching the
// Anthropic adapter's client timeout. eventsource uses the default HTTP
// client, so the request context is the only deadline in play.
const openAiRequestTimeout = 30 * time.Second

const openAiSystemPrompt = "You are an expert copywriter who creates authentic, direct sales scripts in the style of Seth Godin."

type chatGptRequest struct {
	Stream      bool             `json:"stream"`
	Model       string           `json:"model"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
	Messages    []chatGptMessage `json:"messages"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptChunkBody struct {
	Choices []chatGptChunkChoice `json:"choices"`
}

type chatGptChunkChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type openAiTextGenerator struct {
	logger    outbound.LoggerPort
	gptConfig *config.GptConfig
	timeout   time.Duration
}

func NewOpenAiTextGenerator(gptConfig *config.GptConfig, logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &openAiTextGenerator{
		logger:    logger,
		gptConfig: gptConfig,
		timeout:   openAiRequestTimeout,
	}
}

func (o *openAiTextGenerator) Name() string {
	return "openai"
}

// GenerateText issues one streaming chat-completion call and accumulates the
// token deltas into the full response text.
func (o *openAiTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := o.createRequest(ctx, prompt)
	if err != nil {
		o.logger.Error(err, "Failed to create HTTP request for completion stream")
		return "", domain.NewError(domain.ErrorGenerationProvider, "failed to build OpenAI request", err)
	}

	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		o.logger.Error(err, "Failed to subscribe to completion stream")
		return "", domain.NewError(domain.ErrorGenerationProvider, "OpenAI request failed", err)
	}
	defer stream.Close()

	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", domain.NewError(domain.ErrorGenerationProvider, "OpenAI call cancelled", ctx.Err())
		case ev := <-stream.Events:
			if ev.Data() == doneSignal {
				return builder.String(), nil
			}
			payload, err := o.extractPayload(ev)
			if err != nil {
				return "", domain.NewError(domain.ErrorGenerationProvider, "malformed OpenAI stream chunk", err)
			}
			builder.WriteString(payload)
		case err := <-stream.Errors:
			if err == io.EOF {
				return builder.String(), nil
			}
			o.logger.Error(err, "Error occurred during completion streaming")
			return "", domain.NewError(domain.ErrorGenerationProvider, "OpenAI stream failed", err)
		}
	}
}

func (o *openAiTextGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatGptChunkBody
	if err := json.Unmarshal([]byte(event.Data()), &chunkBody); err != nil {
		o.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}
	return chunkBody.Choices[0].Delta.Content, nil
}

func (o *openAiTextGenerator) createRequest(ctx context.Context, prompt string) (*http.Request, error) {
	promptReq := chatGptRequest{
		Stream:      true,
		Model:       o.gptConfig.Model,
		Temperature: 0.8,
		MaxTokens:   500,
		Messages: []chatGptMessage{
			{Role: "system", Content: openAiSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+o.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
