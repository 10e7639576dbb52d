package outbound

import "context"

type FetchedPage struct {
	Body        []byte
	ContentType string
	FinalURL    string
}

// PageFetcherPort fetches a destination document with a bounded timeout,
// following redirects. Non-2xx responses and transport failures come back as
// a fetch error.
type PageFetcherPort interface {
	FetchPage(ctx context.Context, url string) (FetchedPage, error)
}
