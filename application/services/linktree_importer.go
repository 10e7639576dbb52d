package services

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

const maxImportedLinks = 20

var schemeRe = regexp.MustCompile(`^https?://`)

var skipTitleKeywords = []string{"cookie", "privacy", "terms", "report", "about", "help"}

// linkStrategy tries one way of pulling profile links out of the page.
// Strategies run in order until one yields results.
type linkStrategy func(doc *goquery.Document, profile *domain.ImportedProfile) []domain.ImportedLink

type linktreeImporter struct {
	logger     outbound.LoggerPort
	fetcher    outbound.PageFetcherPort
	strategies []linkStrategy
}

func NewLinktreeImporter(fetcher outbound.PageFetcherPort, logger outbound.LoggerPort) inbound.LinktreeImporterPort {
	imp := &linktreeImporter{
		logger:  logger,
		fetcher: fetcher,
	}
	imp.strategies = []linkStrategy{
		imp.testIDAnchors,
		imp.classSelectors,
		imp.nextDataJSON,
		imp.genericAnchors,
	}
	return imp
}

func (l *linktreeImporter) Import(ctx context.Context, profileURL string) (domain.ImportedProfile, error) {
	if !strings.HasPrefix(profileURL, "http") {
		profileURL = "https://linktr.ee/" + profileURL
	}

	profile := domain.ImportedProfile{Username: usernameFromURL(profileURL)}

	page, err := l.fetcher.FetchPage(ctx, profileURL)
	if err != nil {
		return domain.ImportedProfile{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return domain.ImportedProfile{}, domain.NewError(domain.ErrorFetchFailed, "failed to parse profile page", err)
	}

	profile.DisplayName = displayNameOf(doc, profile.Username)
	profile.Bio = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))

	for _, strategy := range l.strategies {
		if links := strategy(doc, &profile); len(links) > 0 {
			profile.Links = links
			break
		}
	}

	if len(profile.Links) > maxImportedLinks {
		profile.Links = profile.Links[:maxImportedLinks]
	}

	l.logger.InfoWithFields("Imported link-in-bio profile", map[string]interface{}{
		"username": profile.Username,
		"links":    len(profile.Links),
	})

	return profile, nil
}

func (l *linktreeImporter) testIDAnchors(doc *goquery.Document, _ *domain.ImportedProfile) []domain.ImportedLink {
	return collectAnchors(doc.Find(`a[data-testid*="link"]`))
}

func (l *linktreeImporter) classSelectors(doc *goquery.Document, _ *domain.ImportedProfile) []domain.ImportedLink {
	selectors := []string{
		`a[class*="Link"]`,
		`a[class*="link"]`,
		`div[class*="LinkButton"] a`,
		`div[id*="link"] a`,
	}
	for _, selector := range selectors {
		if links := collectAnchors(doc.Find(selector)); len(links) > 0 {
			return links
		}
	}
	return nil
}

// nextDataJSON digs into the __NEXT_DATA__ blob Linktree renders with; it is
// the most reliable source when present and also carries the profile header.
func (l *linktreeImporter) nextDataJSON(doc *goquery.Document, profile *domain.ImportedProfile) []domain.ImportedLink {
	raw := doc.Find(`script#__NEXT_DATA__`).First().Text()
	if raw == "" {
		return nil
	}

	var payload struct {
		Props struct {
			PageProps struct {
				Account struct {
					PageTitle   string `json:"pageTitle"`
					Username    string `json:"username"`
					Description string `json:"description"`
					Links       []struct {
						URL   string `json:"url"`
						Title string `json:"title"`
					} `json:"links"`
				} `json:"account"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		l.logger.DebugWithFields("Failed to parse __NEXT_DATA__", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	account := payload.Props.PageProps.Account
	if account.PageTitle != "" {
		profile.DisplayName = account.PageTitle
	} else if account.Username != "" {
		profile.DisplayName = account.Username
	}
	if account.Description != "" {
		profile.Bio = account.Description
	}

	var links []domain.ImportedLink
	for _, link := range account.Links {
		if link.URL != "" && link.Title != "" {
			links = append(links, domain.ImportedLink{Title: link.Title, URL: link.URL})
		}
	}
	return links
}

func (l *linktreeImporter) genericAnchors(doc *goquery.Document, _ *domain.ImportedProfile) []domain.ImportedLink {
	return collectAnchors(doc.Find(`a[href]:not([href^="#"]):not([href^="javascript"])`))
}

func collectAnchors(selection *goquery.Selection) []domain.ImportedLink {
	var links []domain.ImportedLink
	seen := map[string]bool{}

	selection.Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		title := strings.TrimSpace(s.Text())
		if href == "" || len(title) < 2 {
			return
		}
		lower := strings.ToLower(title)
		for _, keyword := range skipTitleKeywords {
			if strings.Contains(lower, keyword) {
				return
			}
		}
		if strings.HasPrefix(href, "//") {
			href = "https:" + href
		}
		if !strings.HasPrefix(href, "http") {
			return
		}
		if strings.Contains(href, "linktr.ee") || strings.Contains(href, "linktree.com") {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true
		links = append(links, domain.ImportedLink{Title: title, URL: href})
	})

	return links
}

func usernameFromURL(profileURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(profileURL), "/")
	trimmed = schemeRe.ReplaceAllString(trimmed, "")
	trimmed = strings.TrimPrefix(trimmed, "www.")

	var username string
	if idx := strings.Index(trimmed, "linktr.ee/"); idx >= 0 {
		username = trimmed[idx+len("linktr.ee/"):]
	} else {
		parts := strings.Split(trimmed, "/")
		username = parts[len(parts)-1]
	}
	return strings.ToLower(username)
}

func displayNameOf(doc *goquery.Document, fallback string) string {
	displayName := fallback
	if titleText := strings.TrimSpace(doc.Find("title").First().Text()); titleText != "" {
		if idx := strings.Index(titleText, "|"); idx >= 0 {
			displayName = strings.TrimSpace(titleText[:idx])
		} else if strings.Contains(titleText, "Linktree") {
			displayName = strings.TrimSpace(strings.ReplaceAll(titleText, "Linktree", ""))
		}
	}
	if ogTitle := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")); ogTitle != "" {
		displayName = ogTitle
	}
	return displayName
}
