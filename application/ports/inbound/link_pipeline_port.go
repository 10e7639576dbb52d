package inbound

import (
	"context"

	"github.com/gbessoni/selfie-fm/domain"
)

// ScriptSelection identifies the chosen script: verbatim text from the
// wizard, custom edited text, or one of the cached variation kinds. The
// first populated field wins, in that order.
type ScriptSelection struct {
	Script     string
	CustomText string
	Kind       domain.VariationKind
}

// LinkPipelinePort sequences extraction, generation, selection and synthesis
// for one link at a time.
type LinkPipelinePort interface {
	GenerateScripts(ctx context.Context, linkID string) ([]domain.ScriptCandidate, error)
	SelectScript(ctx context.Context, linkID string, selection ScriptSelection) (string, error)
	GenerateAudio(ctx context.Context, linkID string) (domain.AudioArtifact, error)
	GenerateWelcomeAudio(ctx context.Context, ownerID, text string) (domain.AudioArtifact, error)
	RemoveVoiceMessage(ctx context.Context, linkID string) error
}
