package config

import (
	"fmt"
	"os"
	"strconv"
)

type ElevenLabsConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	Stability       float64
	SimilarityBoost float64
}

// GetElevenLabsConfig returns nil without error when no ElevenLabs key is
// present. Stability and similarity boost fall back to the provider defaults
// used for every synthesis call.
func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, nil
	}
	apiUrl := os.Getenv("ELEVENLABS_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.elevenlabs.io/v1"
	}
	modelId := os.Getenv("ELEVENLABS_MODEL_ID")
	if modelId == "" {
		modelId = "eleven_monolingual_v1"
	}
	stability := 0.5
	if raw := os.Getenv("ELEVENLABS_STABILITY"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ELEVENLABS_STABILITY: %w", err)
		}
		stability = val
	}
	similarityBoost := 0.75
	if raw := os.Getenv("ELEVENLABS_SIMILARITY_BOOST"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ELEVENLABS_SIMILARITY_BOOST: %w", err)
		}
		similarityBoost = val
	}

	return &ElevenLabsConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		ModelId:         modelId,
		Stability:       stability,
		SimilarityBoost: similarityBoost,
	}, nil
}
