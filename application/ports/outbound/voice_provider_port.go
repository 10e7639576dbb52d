package outbound

import (
	"context"
	"io"

	"github.com/gbessoni/selfie-fm/domain"
)

type CreateCloneRequest struct {
	Name        string
	Description string
	Samples     []domain.VoiceSample
}

type SynthesizeRequest struct {
	VoiceID string
	Text    string
}

// VoiceProviderPort wraps the speech provider's clone-creation and
// text-to-speech endpoints. Synthesize returns the audio body as a stream so
// the caller can write it incrementally.
type VoiceProviderPort interface {
	CreateClone(ctx context.Context, req CreateCloneRequest) (string, error)
	Synthesize(ctx context.Context, req SynthesizeRequest) (io.ReadCloser, error)
}
