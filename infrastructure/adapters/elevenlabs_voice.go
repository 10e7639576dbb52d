package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/config"
	"github.com/gbessoni/selfie-fm/domain"
)

type elevenLabsTtsRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type elevenLabsCloneResponse struct {
	VoiceId string `json:"voice_id"`
}

type elevenLabsVoiceProvider struct {
	client           *http.Client
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewElevenLabsVoiceProvider(elevenLabsConfig *config.ElevenLabsConfig) outbound.VoiceProviderPort {
	return &elevenLabsVoiceProvider{
		client:           &http.Client{Timeout: 60 * time.Second},
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (e *elevenLabsVoiceProvider) CreateClone(ctx context.Context, req outbound.CreateCloneRequest) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("name", req.Name); err != nil {
		return "", domain.NewError(domain.ErrorCloneCreation, "failed to build clone request", err)
	}
	if req.Description != "" {
		if err := writer.WriteField("description", req.Description); err != nil {
			return "", domain.NewError(domain.ErrorCloneCreation, "failed to build clone request", err)
		}
	}
	for _, sample := range req.Samples {
		part, err := writer.CreateFormFile("files", sample.Filename)
		if err != nil {
			return "", domain.NewError(domain.ErrorCloneCreation, "failed to attach voice sample", err)
		}
		if _, err := part.Write(sample.Data); err != nil {
			return "", domain.NewError(domain.ErrorCloneCreation, "failed to attach voice sample", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", domain.NewError(domain.ErrorCloneCreation, "failed to build clone request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.elevenLabsConfig.ApiUrl+"/voices/add", &body)
	if err != nil {
		return "", domain.NewError(domain.ErrorCloneCreation, "failed to build clone request", err)
	}
	httpReq.Header.Set("xi-api-key", e.elevenLabsConfig.ApiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := e.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("action", "Creating voice clone").Msg("ElevenLabs clone request failed")
		return "", domain.NewError(domain.ErrorCloneCreation, "voice clone request failed", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close the clone response body")
		}
	}()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(res.Body)
		log.Error().Int("status", res.StatusCode).Str("message", string(payload)).Msg("ElevenLabs clone creation returned non-OK status code")
		return "", domain.Errorf(domain.ErrorCloneCreation, "voice clone creation returned status %d", res.StatusCode)
	}

	var parsed elevenLabsCloneResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", domain.NewError(domain.ErrorCloneCreation, "failed to decode clone response", err)
	}
	if parsed.VoiceId == "" {
		return "", domain.Errorf(domain.ErrorCloneCreation, "voice clone creation returned an empty voice id")
	}

	return parsed.VoiceId, nil
}

// Synthesize issues one streaming text-to-speech request. The caller owns the
// returned body and must close it.
func (e *elevenLabsVoiceProvider) Synthesize(ctx context.Context, req outbound.SynthesizeRequest) (io.ReadCloser, error) {
	reqBody := elevenLabsTtsRequest{
		Text:    req.Text,
		ModelId: e.elevenLabsConfig.ModelId,
		VoiceSettings: voiceSettings{
			Stability:       e.elevenLabsConfig.Stability,
			SimilarityBoost: e.elevenLabsConfig.SimilarityBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		log.Error().Err(err).Str("action", "Marshalling JSON").Msg("Failed to marshal the request body for ElevenLabs API")
		return nil, domain.NewError(domain.ErrorSynthesisProvider, "failed to build synthesis request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.elevenLabsConfig.ApiUrl+"/text-to-speech/"+req.VoiceID, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, domain.NewError(domain.ErrorSynthesisProvider, "failed to build synthesis request", err)
	}
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("xi-api-key", e.elevenLabsConfig.ApiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("action", "Fetching Audio").Msg("ElevenLabs synthesis request failed")
		return nil, domain.NewError(domain.ErrorSynthesisProvider, "synthesis request failed", err)
	}

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(res.Body)
		if err := res.Body.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close the synthesis response body")
		}
		log.Error().Int("status", res.StatusCode).Str("message", string(payload)).Msg("ElevenLabs synthesis returned non-OK status code")
		return nil, domain.Errorf(domain.ErrorSynthesisProvider, "synthesis returned status %d", res.StatusCode)
	}

	return res.Body, nil
}
