package inbound

import (
	"context"

	"github.com/gbessoni/selfie-fm/domain"
)

type EnsureVoiceIdentityParams struct {
	OwnerID     string
	DisplayName string
	Samples     []domain.VoiceSample
}

type SynthesizeParams struct {
	VoiceID string
	Text    string
	// Dir and Slot name the destination: Dir is the artifact directory,
	// Slot prefixes the timestamped filename.
	Dir  string
	Slot string
	// ReplacePath is the artifact currently occupying the slot, deleted
	// best-effort before the new one is referenced. Empty when the slot
	// was never filled.
	ReplacePath string
}

// VoiceGatewayPort manages the per-owner voice clone and converts selected
// scripts into audio artifacts.
type VoiceGatewayPort interface {
	EnsureVoiceIdentity(ctx context.Context, params EnsureVoiceIdentityParams) (string, error)
	Synthesize(ctx context.Context, params SynthesizeParams) (domain.AudioArtifact, error)
}
