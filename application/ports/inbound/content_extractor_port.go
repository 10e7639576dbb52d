package inbound

import (
	"context"

	"github.com/gbessoni/selfie-fm/domain"
)

type ContentExtractorPort interface {
	Extract(ctx context.Context, url string) (domain.ExtractedContent, error)
}
