package services

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

const previewWordLimit = 200

var whitespaceRe = regexp.MustCompile(`\s+`)

// Keyword groups checked in priority order; the first matching group decides
// the link type.
var linkTypeKeywords = []struct {
	linkType domain.LinkType
	words    []string
}{
	{domain.LinkTypeCourse, []string{"course", "learn", "lesson", "module", "curriculum", "training"}},
	{domain.LinkTypeCoaching, []string{"coaching", "mentorship", "1-on-1", "one-on-one", "consultation"}},
	{domain.LinkTypeProduct, []string{"product", "buy", "shop", "store", "purchase", "price", "$", "cart"}},
	{domain.LinkTypeNewsletter, []string{"newsletter", "subscribe", "email list", "weekly digest"}},
	{domain.LinkTypeBlog, []string{"blog", "article", "post", "read"}},
}

var socialPlatforms = []string{"instagram", "twitter", "facebook", "linkedin", "tiktok", "youtube"}

type contentExtractor struct {
	logger  outbound.LoggerPort
	fetcher outbound.PageFetcherPort
}

func NewContentExtractor(fetcher outbound.PageFetcherPort, logger outbound.LoggerPort) inbound.ContentExtractorPort {
	return &contentExtractor{
		logger:  logger,
		fetcher: fetcher,
	}
}

// Extract fetches the destination once and derives the normalized content
// fields plus the classified link type. Fetch failures surface as a fetch
// error with zero content; the pipeline treats that as recoverable.
func (c *contentExtractor) Extract(ctx context.Context, pageURL string) (domain.ExtractedContent, error) {
	page, err := c.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return domain.ExtractedContent{LinkType: domain.LinkTypeWebsite}, err
	}

	utf8Body := decodeToUtf8(page.Body, page.ContentType)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8Body))
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to parse page HTML", map[string]interface{}{
			"URL": pageURL,
		})
		return domain.ExtractedContent{LinkType: domain.LinkTypeWebsite}, domain.NewError(domain.ErrorFetchFailed, "failed to parse "+pageURL, err)
	}

	content := domain.ExtractedContent{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: metaDescription(doc),
	}

	doc.Find("script,noscript,style,nav,header,footer").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Text(), " "))
	if text == "" {
		text = c.readabilityText(utf8Body, pageURL)
	}

	content.FullText = text
	content.PreviewText = previewOf(text)
	content.LinkType = identifyLinkType(pageURL, content)

	c.logger.DebugWithFields("Extracted page content", map[string]interface{}{
		"URL":   pageURL,
		"title": content.Title,
		"type":  content.LinkType,
	})

	return content, nil
}

// readabilityText is the second extraction strategy, used when stripping the
// DOM leaves no body text (heavily scripted pages).
func (c *contentExtractor) readabilityText(body []byte, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		c.logger.DebugWithFields("Readability fallback yielded nothing", map[string]interface{}{
			"URL": pageURL,
		})
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(article.TextContent, " "))
}

func decodeToUtf8(data []byte, contentType string) []byte {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

func metaDescription(doc *goquery.Document) string {
	desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if desc == "" {
		desc = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	return desc
}

func previewOf(text string) string {
	words := strings.Fields(text)
	if len(words) > previewWordLimit {
		return strings.Join(words[:previewWordLimit], " ") + "..."
	}
	return text
}

// identifyLinkType scans URL, title, description and preview for keyword
// membership in a fixed priority order. First match wins.
func identifyLinkType(pageURL string, content domain.ExtractedContent) domain.LinkType {
	urlLower := strings.ToLower(pageURL)
	combined := strings.ToLower(strings.Join([]string{
		pageURL, content.Title, content.MetaDescription, content.PreviewText,
	}, " "))

	for _, group := range linkTypeKeywords {
		for _, word := range group.words {
			if strings.Contains(combined, word) {
				return group.linkType
			}
		}
	}

	if strings.Contains(urlLower, "youtube.com") || strings.Contains(urlLower, "vimeo.com") ||
		strings.Contains(combined, "video") {
		return domain.LinkTypeVideo
	}

	for _, platform := range socialPlatforms {
		if strings.Contains(urlLower, platform) {
			return domain.LinkTypeSocial
		}
	}

	return domain.LinkTypeWebsite
}
