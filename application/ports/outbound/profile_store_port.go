package outbound

import (
	"context"

	"github.com/gbessoni/selfie-fm/domain"
)

// ProfileStorePort is the record store for owners and their links, accessed
// by id.
type ProfileStorePort interface {
	GetLink(ctx context.Context, id string) (domain.Link, error)
	SaveLink(ctx context.Context, link domain.Link) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
}
