package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/infrastructure/adapters"
)

func newTestImporter(pages map[string]outbound.FetchedPage) *linktreeImporter {
	fetcher := &fakeFetcher{pages: pages}
	return NewLinktreeImporter(fetcher, adapters.NewZerologWrapper()).(*linktreeImporter)
}

func TestImportTestIDAnchors(t *testing.T) {
	const url = "https://linktr.ee/alice"
	importer := newTestImporter(map[string]outbound.FetchedPage{
		url: htmlPage(`<html><head><title>Alice | Linktree</title></head><body>
			<a data-testid="link-button" href="https://example.com/shop">My Shop</a>
			<a data-testid="link-button" href="https://example.com/blog">My Blog</a>
			</body></html>`),
	})

	profile, err := importer.Import(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "Alice", profile.DisplayName)
	require.Len(t, profile.Links, 2)
	assert.Equal(t, "My Shop", profile.Links[0].Title)
	assert.Equal(t, "https://example.com/shop", profile.Links[0].URL)
}

func TestImportBareUsernameGetsPrefixed(t *testing.T) {
	importer := newTestImporter(map[string]outbound.FetchedPage{
		"https://linktr.ee/bob": htmlPage(`<html><body>
			<a data-testid="link-button" href="https://example.com/one">One Thing</a>
			</body></html>`),
	})

	profile, err := importer.Import(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Username)
	assert.Len(t, profile.Links, 1)
}

func TestImportNextDataStrategy(t *testing.T) {
	const url = "https://linktr.ee/carol"
	nextData := `{"props":{"pageProps":{"account":{
		"pageTitle":"Carol Creates","username":"carol","description":"maker of things",
		"links":[
			{"url":"https://example.com/a","title":"Thing A"},
			{"url":"https://example.com/b","title":"Thing B"},
			{"url":"","title":"dropped"},
			{"url":"https://example.com/c","title":""}
		]}}}}`
	importer := newTestImporter(map[string]outbound.FetchedPage{
		url: htmlPage(`<html><head><title>Carol | Linktree</title></head><body>
			<script id="__NEXT_DATA__" type="application/json">` + nextData + `</script>
			</body></html>`),
	})

	profile, err := importer.Import(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, "Carol Creates", profile.DisplayName)
	assert.Equal(t, "maker of things", profile.Bio)
	require.Len(t, profile.Links, 2, "entries missing url or title are dropped")
	assert.Equal(t, "Thing A", profile.Links[0].Title)
	assert.Equal(t, "Thing B", profile.Links[1].Title)
}

func TestImportGenericAnchorFallback(t *testing.T) {
	const url = "https://linktr.ee/dave"
	importer := newTestImporter(map[string]outbound.FetchedPage{
		url: htmlPage(`<html><body>
			<a href="https://example.com/real">Real Thing</a>
			<a href="https://example.com/real">Real Thing</a>
			<a href="//cdn.example.com/asset">Asset Page</a>
			<a href="https://example.com/cookies">Cookie Policy</a>
			<a href="https://example.com/privacy">Privacy Notice</a>
			<a href="https://linktr.ee/dave/settings">Settings</a>
			<a href="/relative">Relative Path</a>
			<a href="#section">X</a>
			</body></html>`),
	})

	profile, err := importer.Import(context.Background(), url)
	require.NoError(t, err)

	var urls []string
	for _, link := range profile.Links {
		urls = append(urls, link.URL)
	}
	assert.Equal(t, []string{"https://example.com/real", "https://cdn.example.com/asset"}, urls)
}

func TestImportCapsLinkCount(t *testing.T) {
	var anchors strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&anchors, `<a data-testid="link-button" href="https://example.com/%d">Item %d</a>`, i, i)
	}
	const url = "https://linktr.ee/erin"
	importer := newTestImporter(map[string]outbound.FetchedPage{
		url: htmlPage("<html><body>" + anchors.String() + "</body></html>"),
	})

	profile, err := importer.Import(context.Background(), url)
	require.NoError(t, err)
	assert.Len(t, profile.Links, maxImportedLinks)
}

func TestImportFetchFailure(t *testing.T) {
	importer := newTestImporter(map[string]outbound.FetchedPage{})

	_, err := importer.Import(context.Background(), "https://linktr.ee/ghost")
	require.Error(t, err)
}

func TestUsernameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://linktr.ee/Alice/", "alice"},
		{"https://www.linktr.ee/bob", "bob"},
		{"https://other.example.com/profiles/Carol", "carol"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usernameFromURL(tt.in), tt.in)
	}
}
