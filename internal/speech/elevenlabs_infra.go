package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/empathy_phone/internal/ports"
)

const defaultElevenBaseURL = "https://api.elevenlabs.io"

type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	httpCli *http.Client
}

func NewElevenLabsClient(apiKey string) *ElevenLabsClient {
	return NewElevenLabsClientWithURL(apiKey, defaultElevenBaseURL)
}

func NewElevenLabsClientWithURL(apiKey, baseURL string) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCli: http.DefaultClient,
	}
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// TEXT → SPEECH, mp3 bytes back.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, voiceID, text string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &ports.DependencyError{
			Stage: "tts",
			Kind:  ports.KindUnavailable,
			Err:   errors.New("ELEVENLABS_API_KEY not set"),
		}
	}

	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.8,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ports.DependencyError{Stage: "tts", Kind: ports.KindTimeout, Err: err}
		}
		return nil, &ports.DependencyError{Stage: "tts", Kind: ports.KindUpstream, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &ports.DependencyError{
			Stage:  "tts",
			Kind:   ports.KindUpstream,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("elevenlabs error: %s", string(b)),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ports.DependencyError{Stage: "tts", Kind: ports.KindUpstream, Err: err}
	}
	return audio, nil
}
