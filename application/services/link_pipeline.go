package services

import (
	"context"
	"strings"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

// Artifact layout relative to the audio root. Paths under these directories
// are stored verbatim on the owning record.
const (
	LinkVoicesDir   = "link_voices"
	VoiceSamplesDir = "voice_samples"
	WelcomeDir      = "welcome"
)

type linkPipeline struct {
	logger     outbound.LoggerPort
	profiles   outbound.ProfileStorePort
	audioStore outbound.AudioStorePort
	extractor  inbound.ContentExtractorPort
	scripts    inbound.ScriptGeneratorPort
	voice      inbound.VoiceGatewayPort
}

func NewLinkPipeline(profiles outbound.ProfileStorePort, audioStore outbound.AudioStorePort,
	extractor inbound.ContentExtractorPort, scripts inbound.ScriptGeneratorPort,
	voice inbound.VoiceGatewayPort, logger outbound.LoggerPort) inbound.LinkPipelinePort {
	return &linkPipeline{
		logger:     logger,
		profiles:   profiles,
		audioStore: audioStore,
		extractor:  extractor,
		scripts:    scripts,
		voice:      voice,
	}
}

// GenerateScripts runs extraction (or reuses the cached summary), generates
// three candidates and persists all of them so re-selection never needs a
// second provider call.
func (p *linkPipeline) GenerateScripts(ctx context.Context, linkID string) ([]domain.ScriptCandidate, error) {
	link, err := p.profiles.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	owner, err := p.profiles.GetUser(ctx, link.OwnerID)
	if err != nil {
		return nil, err
	}

	content, err := p.ensureContent(ctx, &link)
	if err != nil {
		return nil, err
	}

	title := content.Title
	if title == "" {
		title = link.Title
	}

	candidates, err := p.scripts.Generate(ctx, inbound.GenerateScriptsParams{
		LinkURL:         link.URL,
		LinkTitle:       title,
		ScrapedContent:  link.ScrapedContent,
		BusinessContext: owner.Bio,
	})
	if err != nil {
		return nil, err
	}

	link.ScriptBrief = candidates[0].Text
	link.ScriptStandard = candidates[1].Text
	link.ScriptConversational = candidates[2].Text
	if err := p.profiles.SaveLink(ctx, link); err != nil {
		return nil, err
	}

	p.logger.InfoWithFields("Generated script variations", map[string]interface{}{
		"link_id": link.ID,
	})

	return candidates, nil
}

// ensureContent returns the extraction result for the link, short-circuiting
// to a minimal stand-in when a summary is already cached. Cache hits skip the
// fetch entirely, trading freshness for cost. A failed fetch degrades to
// empty content so generation can proceed with what the link itself carries.
func (p *linkPipeline) ensureContent(ctx context.Context, link *domain.Link) (domain.ExtractedContent, error) {
	if link.ScrapedContent != "" {
		p.logger.DebugWithFields("Using cached content", map[string]interface{}{
			"link_id": link.ID,
		})
		return domain.ExtractedContent{
			Title:       link.Title,
			PreviewText: link.ScrapedContent,
			LinkType:    domain.LinkTypeWebsite,
		}, nil
	}

	content, err := p.extractor.Extract(ctx, link.URL)
	if err != nil {
		p.logger.WarnWithFields("Content extraction failed, continuing with empty content", map[string]interface{}{
			"link_id": link.ID,
			"url":     link.URL,
			"error":   err.Error(),
		})
		return domain.ExtractedContent{LinkType: domain.LinkTypeWebsite}, nil
	}

	link.ScrapedContent = content.ContextSummary()
	if err := p.profiles.SaveLink(ctx, *link); err != nil {
		return domain.ExtractedContent{}, err
	}
	return content, nil
}

// SelectScript persists the chosen script as both the selection and the
// voice message text. Verbatim text wins over custom text wins over a cached
// variation kind.
func (p *linkPipeline) SelectScript(ctx context.Context, linkID string, selection inbound.ScriptSelection) (string, error) {
	link, err := p.profiles.GetLink(ctx, linkID)
	if err != nil {
		return "", err
	}

	var chosen string
	switch {
	case selection.Script != "":
		chosen = selection.Script
	case selection.CustomText != "":
		chosen = selection.CustomText
	case selection.Kind != "":
		if !validVariation(selection.Kind) {
			return "", domain.Errorf(domain.ErrorNoScriptProvided, "invalid script_type %q", selection.Kind)
		}
		chosen = link.ScriptFor(selection.Kind)
		if chosen == "" {
			return "", domain.Errorf(domain.ErrorNotFound,
				"no %s script generated for this link, generate scripts first", selection.Kind)
		}
	default:
		return "", domain.Errorf(domain.ErrorNoScriptProvided,
			"either script_type, custom_text, or script is required")
	}

	link.SelectedScript = chosen
	link.VoiceMessageText = chosen
	if err := p.profiles.SaveLink(ctx, link); err != nil {
		return "", err
	}
	return chosen, nil
}

// GenerateAudio synthesizes the link's selected script with the owner's
// voice clone. The new path is persisted only after the artifact is fully
// written; the replaced file is cleaned up best-effort by the gateway.
func (p *linkPipeline) GenerateAudio(ctx context.Context, linkID string) (domain.AudioArtifact, error) {
	link, err := p.profiles.GetLink(ctx, linkID)
	if err != nil {
		return domain.AudioArtifact{}, err
	}
	owner, err := p.profiles.GetUser(ctx, link.OwnerID)
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	if owner.VoiceCloneID == "" {
		return domain.AudioArtifact{}, domain.Errorf(domain.ErrorVoiceNotConfigured,
			"voice clone not set up, record a voice sample first")
	}
	if strings.TrimSpace(link.VoiceMessageText) == "" {
		return domain.AudioArtifact{}, domain.Errorf(domain.ErrorEmptyScript,
			"no script selected for this link, select a script first")
	}

	artifact, err := p.voice.Synthesize(ctx, inbound.SynthesizeParams{
		VoiceID:     owner.VoiceCloneID,
		Text:        link.VoiceMessageText,
		Dir:         LinkVoicesDir,
		Slot:        "link_" + link.ID,
		ReplacePath: link.VoiceMessageAudio,
	})
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	link.VoiceMessageAudio = artifact.RelativePath
	link.VoiceMessageText = artifact.Text
	if err := p.profiles.SaveLink(ctx, link); err != nil {
		return domain.AudioArtifact{}, err
	}
	return artifact, nil
}

// GenerateWelcomeAudio fills the owner's single welcome-message slot.
func (p *linkPipeline) GenerateWelcomeAudio(ctx context.Context, ownerID, text string) (domain.AudioArtifact, error) {
	owner, err := p.profiles.GetUser(ctx, ownerID)
	if err != nil {
		return domain.AudioArtifact{}, err
	}
	if owner.VoiceCloneID == "" {
		return domain.AudioArtifact{}, domain.Errorf(domain.ErrorVoiceNotConfigured,
			"voice clone not set up, record a voice sample first")
	}

	artifact, err := p.voice.Synthesize(ctx, inbound.SynthesizeParams{
		VoiceID:     owner.VoiceCloneID,
		Text:        text,
		Dir:         WelcomeDir,
		Slot:        owner.Username + "_welcome",
		ReplacePath: owner.WelcomeMessageAudio,
	})
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	owner.WelcomeMessageText = artifact.Text
	owner.WelcomeMessageAudio = artifact.RelativePath
	if err := p.profiles.SaveUser(ctx, owner); err != nil {
		return domain.AudioArtifact{}, err
	}
	return artifact, nil
}

// RemoveVoiceMessage clears a link's audio slot and deletes the artifact.
func (p *linkPipeline) RemoveVoiceMessage(ctx context.Context, linkID string) error {
	link, err := p.profiles.GetLink(ctx, linkID)
	if err != nil {
		return err
	}
	if link.VoiceMessageAudio == "" {
		return nil
	}

	if err := p.audioStore.Delete(link.VoiceMessageAudio); err != nil {
		p.logger.WarnWithFields("Could not delete voice message audio", map[string]interface{}{
			"link_id": link.ID,
			"path":    link.VoiceMessageAudio,
			"error":   err.Error(),
		})
	}
	link.VoiceMessageAudio = ""
	link.VoiceMessageText = ""
	link.SelectedScript = ""
	return p.profiles.SaveLink(ctx, link)
}

func validVariation(kind domain.VariationKind) bool {
	for _, v := range domain.Variations {
		if v == kind {
			return true
		}
	}
	return false
}
