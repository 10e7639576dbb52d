package inbound

import (
	"context"

	"github.com/gbessoni/selfie-fm/domain"
)

type GenerateScriptsParams struct {
	LinkURL         string
	LinkTitle       string
	ScrapedContent  string
	BusinessContext string
}

// ScriptGeneratorPort produces exactly three pitch script candidates per
// call, padding with a deterministic fallback when the provider's output
// falls short.
type ScriptGeneratorPort interface {
	Generate(ctx context.Context, params GenerateScriptsParams) ([]domain.ScriptCandidate, error)
}
