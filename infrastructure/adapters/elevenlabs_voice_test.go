package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbessoni/selfie-fm/application/ports/outbound"
	"github.com/gbessoni/selfie-fm/config"
	"github.com/gbessoni/selfie-fm/domain"
)

func newElevenLabsTestProvider(serverURL string) outbound.VoiceProviderPort {
	return NewElevenLabsVoiceProvider(&config.ElevenLabsConfig{
		ApiUrl:          serverURL,
		ApiKey:          "test-key",
		ModelId:         "eleven_monolingual_v1",
		Stability:       0.5,
		SimilarityBoost: 0.75,
	})
}

func TestCreateCloneSendsMultipartSamples(t *testing.T) {
	var gotKey, gotName string
	var gotFiles int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/voices/add", r.URL.Path)
		gotKey = r.Header.Get("xi-api-key")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotName = r.FormValue("name")
		gotFiles = len(r.MultipartForm.File["files"])

		_ = json.NewEncoder(w).Encode(map[string]string{"voice_id": "voice-xyz"})
	}))
	defer server.Close()

	voiceID, err := newElevenLabsTestProvider(server.URL).CreateClone(context.Background(), outbound.CreateCloneRequest{
		Name:        "Alice_userowner-1",
		Description: "Voice clone for alice",
		Samples: []domain.VoiceSample{
			{Filename: "one.mp3", ContentType: "audio/mpeg", Data: []byte("aaa")},
			{Filename: "two.mp3", ContentType: "audio/mpeg", Data: []byte("bbb")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "voice-xyz", voiceID)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Alice_userowner-1", gotName)
	assert.Equal(t, 2, gotFiles)
}

func TestCreateCloneRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad samples", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	_, err := newElevenLabsTestProvider(server.URL).CreateClone(context.Background(), outbound.CreateCloneRequest{
		Name:    "x",
		Samples: []domain.VoiceSample{{Filename: "one.mp3", Data: []byte("aaa")}},
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorCloneCreation, domain.CodeOf(err))
}

func TestCreateCloneRejectsEmptyVoiceID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"voice_id": ""})
	}))
	defer server.Close()

	_, err := newElevenLabsTestProvider(server.URL).CreateClone(context.Background(), outbound.CreateCloneRequest{
		Name:    "x",
		Samples: []domain.VoiceSample{{Filename: "one.mp3", Data: []byte("aaa")}},
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorCloneCreation, domain.CodeOf(err))
}

func TestSynthesizeStreamsAudio(t *testing.T) {
	var gotBody elevenLabsTtsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/text-to-speech/voice-xyz", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	body, err := newElevenLabsTestProvider(server.URL).Synthesize(context.Background(), outbound.SynthesizeRequest{
		VoiceID: "voice-xyz",
		Text:    "hello there",
	})
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
	assert.Equal(t, "hello there", gotBody.Text)
	assert.Equal(t, "eleven_monolingual_v1", gotBody.ModelId)
	assert.Equal(t, 0.5, gotBody.VoiceSettings.Stability)
	assert.Equal(t, 0.75, gotBody.VoiceSettings.SimilarityBoost)
}

func TestSynthesizeNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newElevenLabsTestProvider(server.URL).Synthesize(context.Background(), outbound.SynthesizeRequest{
		VoiceID: "voice-xyz",
		Text:    "hello",
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorSynthesisProvider, domain.CodeOf(err))
}
