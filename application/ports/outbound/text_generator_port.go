package outbound

import "context"

// TextGeneratorPort is the uniform capability exposed by a configured
// text-generation provider. Exactly one provider backs it per process.
type TextGeneratorPort interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
}
