package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/empathy_phone/internal/ports"
)

func TestElevenLabsSynthesize(t *testing.T) {
	var gotPath, gotKey, gotAccept string
	var gotBody ttsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		gotAccept = r.Header.Get("Accept")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte{0x49, 0x44, 0x33})
	}))
	defer srv.Close()

	c := NewElevenLabsClientWithURL("secret", srv.URL)

	audio, err := c.Synthesize(context.Background(), "voice-1", "hei maailma")
	require.NoError(t, err)
	require.Equal(t, []byte{0x49, 0x44, 0x33}, audio)

	require.Equal(t, "/v1/text-to-speech/voice-1", gotPath)
	require.Equal(t, "secret", gotKey)
	require.Equal(t, "audio/mpeg", gotAccept)
	require.Equal(t, "hei maailma", gotBody.Text)
	require.Equal(t, "eleven_multilingual_v2", gotBody.ModelID)
	require.InDelta(t, 0.5, gotBody.VoiceSettings.Stability, 0.001)
	require.InDelta(t, 0.8, gotBody.VoiceSettings.SimilarityBoost, 0.001)
}

func TestElevenLabsUpstreamErrorKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewElevenLabsClientWithURL("bad-key", srv.URL)

	_, err := c.Synthesize(context.Background(), "voice-1", "hello")

	var dep *ports.DependencyError
	require.ErrorAs(t, err, &dep)
	require.Equal(t, "tts", dep.Stage)
	require.Equal(t, ports.KindUpstream, dep.Kind)
	require.Equal(t, http.StatusUnauthorized, dep.Status)
}

func TestElevenLabsMissingKeyIsUnavailable(t *testing.T) {
	c := NewElevenLabsClient("")

	_, err := c.Synthesize(context.Background(), "voice-1", "hello")

	var dep *ports.DependencyError
	require.ErrorAs(t, err, &dep)
	require.Equal(t, ports.KindUnavailable, dep.Kind)
}

func TestWhisperMissingKeyIsUnavailable(t *testing.T) {
	c := NewWhisperClient("")

	_, err := c.Transcribe(context.Background(), "/tmp/nope.m4a", "fi")

	var dep *ports.DependencyError
	require.ErrorAs(t, err, &dep)
	require.Equal(t, "stt", dep.Stage)
	require.Equal(t, ports.KindUnavailable, dep.Kind)
}
