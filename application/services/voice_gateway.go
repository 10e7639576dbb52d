package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gbessoni/selfie-fm/application/ports/inbound"
	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/domain"
)

// Sample size band for a 5-15 second recording.
const (
	minSampleBytes = 50_000
	maxSampleBytes = 3_000_000
	maxSamples     = 3
)

type voiceGateway struct {
	logger     outbound.LoggerPort
	provider   outbound.VoiceProviderPort
	audioStore outbound.AudioStorePort
	profiles   outbound.ProfileStorePort
	dispatcher outbound.TaskDispatcher
	samplesDir string
}

// NewVoiceGateway wires the speech provider chosen at startup. provider may
// be nil when no credential is configured.
func NewVoiceGateway(provider outbound.VoiceProviderPort, audioStore outbound.AudioStorePort,
	profiles outbound.ProfileStorePort, dispatcher outbound.TaskDispatcher,
	samplesDir string, logger outbound.LoggerPort) inbound.VoiceGatewayPort {
	return &voiceGateway{
		logger:     logger,
		provider:   provider,
		audioStore: audioStore,
		profiles:   profiles,
		dispatcher: dispatcher,
		samplesDir: samplesDir,
	}
}

// EnsureVoiceIdentity validates the uploaded samples, creates a provider-side
// clone and overwrites the owner's voice identity. Nothing is persisted when
// the provider call fails.
func (v *voiceGateway) EnsureVoiceIdentity(ctx context.Context, params inbound.EnsureVoiceIdentityParams) (string, error) {
	if v.provider == nil {
		return "", domain.Errorf(domain.ErrorNotConfigured,
			"voice cloning is not configured, set ELEVENLABS_API_KEY")
	}
	if err := validateSamples(params.Samples); err != nil {
		return "", err
	}

	owner, err := v.profiles.GetUser(ctx, params.OwnerID)
	if err != nil {
		return "", err
	}

	voiceID, err := v.provider.CreateClone(ctx, outbound.CreateCloneRequest{
		Name:        fmt.Sprintf("%s_user%s", params.DisplayName, owner.ID),
		Description: "Voice clone for " + owner.Username,
		Samples:     params.Samples,
	})
	if err != nil {
		return "", err
	}

	samplePath, err := v.audioStore.Save(v.samplesDir, owner.Username+"_sample", params.Samples[0].Data)
	if err != nil {
		v.logger.ErrorWithFields(err, "Failed to archive voice sample", map[string]interface{}{
			"owner": owner.Username,
		})
		samplePath = ""
	}

	owner.VoiceCloneID = voiceID
	if samplePath != "" {
		owner.VoiceSamplePath = samplePath
	}
	if err := v.profiles.SaveUser(ctx, owner); err != nil {
		return "", err
	}

	v.logger.InfoWithFields("Voice clone created", map[string]interface{}{
		"owner":    owner.Username,
		"voice_id": voiceID,
	})

	return voiceID, nil
}

// Synthesize converts text into a new audio artifact for the slot. The prior
// artifact is removed best-effort off the request path; a deletion failure
// never blocks synthesis.
func (v *voiceGateway) Synthesize(ctx context.Context, params inbound.SynthesizeParams) (domain.AudioArtifact, error) {
	if v.provider == nil {
		return domain.AudioArtifact{}, domain.Errorf(domain.ErrorNotConfigured,
			"audio generation is not configured, set ELEVENLABS_API_KEY")
	}
	if params.VoiceID == "" {
		return domain.AudioArtifact{}, domain.Errorf(domain.ErrorVoiceNotConfigured,
			"voice clone not set up, record a voice sample first")
	}
	text := strings.TrimSpace(params.Text)
	if text == "" {
		return domain.AudioArtifact{}, domain.Errorf(domain.ErrorEmptyScript, "script text is empty")
	}

	if params.ReplacePath != "" {
		v.deleteReplaced(params.ReplacePath)
	}

	body, err := v.provider.Synthesize(ctx, outbound.SynthesizeRequest{
		VoiceID: params.VoiceID,
		Text:    text,
	})
	if err != nil {
		return domain.AudioArtifact{}, err
	}
	defer func() {
		if err := body.Close(); err != nil {
			v.logger.Error(err, "Failed to close the synthesis stream")
		}
	}()

	relativePath, err := v.audioStore.SaveStream(params.Dir, params.Slot, body)
	if err != nil {
		return domain.AudioArtifact{}, domain.NewError(domain.ErrorSynthesisProvider,
			"failed to store synthesized audio", err)
	}

	return domain.AudioArtifact{RelativePath: relativePath, Text: text}, nil
}

func (v *voiceGateway) deleteReplaced(relativePath string) {
	remove := func() {
		if err := v.audioStore.Delete(relativePath); err != nil {
			v.logger.WarnWithFields("Could not delete old audio file", map[string]interface{}{
				"path":  relativePath,
				"error": err.Error(),
			})
		}
	}
	if err := v.dispatcher.Submit(remove); err != nil {
		// Pool saturated; do it inline, still best-effort.
		remove()
	}
}

func validateSamples(samples []domain.VoiceSample) error {
	if len(samples) == 0 {
		return domain.Errorf(domain.ErrorInvalidSample, "at least one voice sample is required")
	}
	if len(samples) > maxSamples {
		return domain.Errorf(domain.ErrorInvalidSample, "maximum %d voice samples allowed", maxSamples)
	}
	for _, sample := range samples {
		if !strings.HasPrefix(sample.ContentType, "audio/") {
			return domain.Errorf(domain.ErrorInvalidSample,
				"invalid audio file type for %q, upload an audio file", sample.Filename)
		}
		if len(sample.Data) < minSampleBytes {
			return domain.Errorf(domain.ErrorInvalidSample,
				"voice sample %q too short, record 5-15 seconds", sample.Filename)
		}
		if len(sample.Data) > maxSampleBytes {
			return domain.Errorf(domain.ErrorInvalidSample,
				"voice sample %q too large, keep it under 20 seconds", sample.Filename)
		}
	}
	return nil
}
