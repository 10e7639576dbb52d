package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

const (
	scriptCount         = 3
	scriptWordCap       = 50
	scriptWordOvershoot = 55
)

var scriptMarkerRe = regexp.MustCompile(`(?i)SCRIPT\s+\d+:`)

var metaCommentaryPrefixes = []string{"Here", "Note:", "Script:", "Remember"}

type scriptGenerator struct {
	logger   outbound.LoggerPort
	provider outbound.TextGeneratorPort
}

// NewScriptGenerator wires the text-generation provider chosen at startup.
// provider may be nil when no credential is configured; Generate then fails
// before any network call.
func NewScriptGenerator(provider outbound.TextGeneratorPort, logger outbound.LoggerPort) inbound.ScriptGeneratorPort {
	return &scriptGenerator{
		logger:   logger,
		provider: provider,
	}
}

// Generate makes a single provider call and always returns exactly three
// candidates, padding with a deterministic fallback when the provider's
// output cannot be parsed into three scripts.
func (g *scriptGenerator) Generate(ctx context.Context, params inbound.GenerateScriptsParams) ([]domain.ScriptCandidate, error) {
	if g.provider == nil {
		return nil, domain.Errorf(domain.ErrorNotConfigured,
			"no AI API key configured, set OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}

	prompt := buildScriptsPrompt(params)

	g.logger.InfoWithFields("Generating pitch scripts", map[string]interface{}{
		"provider": g.provider.Name(),
		"url":      params.LinkURL,
	})

	response, err := g.provider.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseScriptCandidates(response), nil
}

func buildScriptsPrompt(params inbound.GenerateScriptsParams) string {
	businessContext := params.BusinessContext
	if businessContext == "" {
		businessContext = "No specific business context provided"
	}

	return fmt.Sprintf(`You are a master copywriter in the style of Seth Godin - direct, authentic, no hype.

Generate %d different 10-second voice scripts (45-50 words each) for this link.

Link: %s
Destination: %s
Page content: %s
Business context: %s

Each script must:
- Address a specific pain point or desire
- Show urgency, social proof, or scarcity (if relevant)
- End with clear call-to-action
- Sound natural when spoken aloud
- Be conversational and authentic
- Be 45-50 words

Create %d DIFFERENT approaches:
1. First script: Focus on emotional benefit/transformation
2. Second script: Focus on practical value/problem-solving
3. Third script: Focus on urgency/exclusivity

Format your response EXACTLY like this:

SCRIPT 1:
[script text here]

SCRIPT 2:
[script text here]

SCRIPT 3:
[script text here]

Write ONLY the scripts in this format, no explanations.`,
		scriptCount, params.LinkTitle, params.LinkURL, params.ScrapedContent, businessContext, scriptCount)
}

// parseScriptCandidates splits the provider response on the SCRIPT markers,
// falls back to blank-line paragraphs, and pads to exactly three candidates.
func parseScriptCandidates(response string) []domain.ScriptCandidate {
	parts := nonEmptyTrimmed(scriptMarkerRe.Split(response, -1))
	if len(parts) < scriptCount {
		parts = nonEmptyTrimmed(strings.Split(response, "\n\n"))
	}

	candidates := make([]domain.ScriptCandidate, 0, scriptCount)
	for i, part := range parts {
		if i >= scriptCount {
			break
		}
		text := cleanScript(part)
		candidates = append(candidates, domain.ScriptCandidate{
			Text:      text,
			WordCount: len(strings.Fields(text)),
			Variation: domain.Variations[i],
		})
	}

	for len(candidates) < scriptCount {
		text := fallbackScript(parts)
		candidates = append(candidates, domain.ScriptCandidate{
			Text:      text,
			WordCount: len(strings.Fields(text)),
			Variation: domain.Variations[len(candidates)],
		})
	}

	return candidates
}

func fallbackScript(parts []string) string {
	subject := "this amazing offer"
	if len(parts) > 0 {
		subject = parts[0]
		// Truncate on rune boundaries, a byte slice could split a
		// multi-byte character.
		if runes := []rune(subject); len(runes) > 50 {
			subject = string(runes[:50])
		}
	}
	return fmt.Sprintf("Check out %s... Click to learn more!", subject)
}

// cleanScript strips surrounding quotes, drops meta-commentary lines,
// collapses to a single line and hard-truncates overshooting scripts.
func cleanScript(script string) string {
	script = strings.Trim(script, `"'`)

	var cleaned []string
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || looksLikeMetaCommentary(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}
	script = strings.Join(cleaned, " ")

	words := strings.Fields(script)
	if len(words) > scriptWordOvershoot {
		script = strings.Join(words[:scriptWordCap], " ") + "..."
	}
	return script
}

func looksLikeMetaCommentary(line string) bool {
	for _, prefix := range metaCommentaryPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func nonEmptyTrimmed(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
