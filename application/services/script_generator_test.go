package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/domain"
	"github.com/gbessoni/selfie-fm/infrastructure/adapters"
)

var generateParams = inbound.GenerateScriptsParams{
	LinkURL:         "https://example.com/course",
	LinkTitle:       "My Course",
	ScrapedContent:  "Title: My Course\nLink Type: course",
	BusinessContext: "I teach people things",
}

func TestGenerateParsesMarkerFormat(t *testing.T) {
	provider := &fakeTextGenerator{response: "SCRIPT 1:\nAlpha script one.\n\nSCRIPT 2:\nBeta script two.\n\nSCRIPT 3:\nGamma script three."}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	candidates, err := generator.Generate(context.Background(), generateParams)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "Alpha script one.", candidates[0].Text)
	assert.Equal(t, "Beta script two.", candidates[1].Text)
	assert.Equal(t, "Gamma script three.", candidates[2].Text)
	assert.Equal(t, domain.VariationBrief, candidates[0].Variation)
	assert.Equal(t, domain.VariationStandard, candidates[1].Variation)
	assert.Equal(t, domain.VariationConversational, candidates[2].Variation)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerateFallsBackToParagraphs(t *testing.T) {
	provider := &fakeTextGenerator{response: "First paragraph pitch.\n\nSecond paragraph pitch.\n\nThird paragraph pitch."}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	candidates, err := generator.Generate(context.Background(), generateParams)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "First paragraph pitch.", candidates[0].Text)
	assert.Equal(t, "Third paragraph pitch.", candidates[2].Text)
}

func TestGenerateAlwaysReturnsThreeCandidates(t *testing.T) {
	responses := []string{
		"",
		"just one blob of text",
		"one pitch\n\nanother pitch",
		"SCRIPT 1:\nonly the first one",
	}

	for _, response := range responses {
		provider := &fakeTextGenerator{response: response}
		generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

		candidates, err := generator.Generate(context.Background(), generateParams)
		require.NoError(t, err, "response %q", response)
		require.Len(t, candidates, 3, "response %q", response)

		for i, candidate := range candidates {
			assert.NotEmpty(t, candidate.Text)
			assert.Equal(t, domain.Variations[i], candidate.Variation)
		}
	}
}

func TestGenerateWordCountMatchesText(t *testing.T) {
	provider := &fakeTextGenerator{response: "SCRIPT 1:\nOne two three.\n\nSCRIPT 2:\nFour five six seven.\n\nSCRIPT 3:\n"}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	candidates, err := generator.Generate(context.Background(), generateParams)
	require.NoError(t, err)

	for _, candidate := range candidates {
		assert.Equal(t, len(strings.Fields(candidate.Text)), candidate.WordCount)
	}
}

func TestGenerateEmptyResponsePadsWithFallback(t *testing.T) {
	provider := &fakeTextGenerator{response: ""}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	candidates, err := generator.Generate(context.Background(), generateParams)
	require.NoError(t, err)
	for _, candidate := range candidates {
		assert.Equal(t, "Check out this amazing offer... Click to learn more!", candidate.Text)
	}
}

func TestFallbackScriptKeepsMultiByteRunesIntact(t *testing.T) {
	// 60 runes of 2 bytes each: a byte-index cut at 50 would land inside
	// a character.
	provider := &fakeTextGenerator{response: strings.Repeat("é", 60)}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	candidates, err := generator.Generate(context.Background(), generateParams)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	for _, candidate := range candidates[1:] {
		assert.True(t, utf8.ValidString(candidate.Text))
		assert.Contains(t, candidate.Text, strings.Repeat("é", 50))
	}
}

func TestCleanScript(t *testing.T) {
	t.Run("strips surrounding quotes", func(t *testing.T) {
		assert.Equal(t, "Plain pitch.", cleanScript(`"Plain pitch."`))
	})

	t.Run("drops meta commentary lines", func(t *testing.T) {
		in := "Here are your scripts:\nThe actual pitch text.\nNote: keep it short"
		assert.Equal(t, "The actual pitch text.", cleanScript(in))
	})

	t.Run("collapses multiline scripts", func(t *testing.T) {
		assert.Equal(t, "line one line two", cleanScript("line one\nline two"))
	})

	t.Run("truncates overshooting scripts", func(t *testing.T) {
		long := strings.TrimSpace(strings.Repeat("word ", 60))
		out := cleanScript(long)
		assert.True(t, strings.HasSuffix(out, "..."))
		assert.Len(t, strings.Fields(out), scriptWordCap)
	})

	t.Run("keeps scripts at the overshoot boundary", func(t *testing.T) {
		boundary := strings.TrimSpace(strings.Repeat("word ", scriptWordOvershoot))
		assert.Equal(t, boundary, cleanScript(boundary))
	})
}

func TestGenerateWithoutProvider(t *testing.T) {
	generator := NewScriptGenerator(nil, adapters.NewZerologWrapper())

	_, err := generator.Generate(context.Background(), generateParams)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorNotConfigured, domain.CodeOf(err))
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	provider := &fakeTextGenerator{err: fmt.Errorf("upstream exploded")}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	_, err := generator.Generate(context.Background(), generateParams)
	require.Error(t, err)
}

func TestBuildScriptsPromptIncludesContext(t *testing.T) {
	provider := &fakeTextGenerator{response: ""}
	generator := NewScriptGenerator(provider, adapters.NewZerologWrapper())

	_, err := generator.Generate(context.Background(), generateParams)
	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)

	prompt := provider.prompts[0]
	assert.Contains(t, prompt, generateParams.LinkURL)
	assert.Contains(t, prompt, generateParams.LinkTitle)
	assert.Contains(t, prompt, generateParams.ScrapedContent)
	assert.Contains(t, prompt, generateParams.BusinessContext)
}

func TestBuildScriptsPromptDefaultBusinessContext(t *testing.T) {
	params := generateParams
	params.BusinessContext = ""
	prompt := buildScriptsPrompt(params)
	assert.Contains(t, prompt, "No specific business context provided")
}
