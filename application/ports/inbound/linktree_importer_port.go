package inbound

import (
	"context"

	"github.com/gbessoni/selfie-fm/domain"
)

type LinktreeImporterPort interface {
	Import(ctx context.Context, url string) (domain.ImportedProfile, error)
}
