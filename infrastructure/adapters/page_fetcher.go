package adapters

import (
	"context"
	"io"
	"net/http"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/config"
	"github.com/gbessoni/selfie-fm/domain"
)

type pageFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
	config *config.ScraperConfig
}

func NewPageFetcher(scraperConfig *config.ScraperConfig, logger outbound.LoggerPort) outbound.PageFetcherPort {
	return &pageFetcher{
		logger: logger,
		client: &http.Client{Timeout: scraperConfig.Timeout},
		config: scraperConfig,
	}
}

func (p *pageFetcher) FetchPage(ctx context.Context, url string) (outbound.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return outbound.FetchedPage{}, domain.NewError(domain.ErrorFetchFailed, "failed to build request for "+url, err)
	}
	req.Header.Set("User-Agent", p.config.UserAgent)

	res, err := p.client.Do(req)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to fetch page", map[string]interface{}{
			"URL": url,
		})
		return outbound.FetchedPage{}, domain.NewError(domain.ErrorFetchFailed, "failed to fetch "+url, err)
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			p.logger.ErrorWithFields(err, "Failed to close the response body", map[string]interface{}{
				"URL": url,
			})
		}
	}(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		p.logger.ErrorWithFields(nil, "Page fetch returned non-2xx status code", map[string]interface{}{
			"URL":    url,
			"status": res.StatusCode,
		})
		return outbound.FetchedPage{}, domain.Errorf(domain.ErrorFetchFailed, "fetching %s returned status %d", url, res.StatusCode)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"URL": url,
		})
		return outbound.FetchedPage{}, domain.NewError(domain.ErrorFetchFailed, "failed to read body of "+url, err)
	}

	return outbound.FetchedPage{
		Body:        payload,
		ContentType: res.Header.Get("Content-Type"),
		FinalURL:    res.Request.URL.String(),
	}, nil
}
