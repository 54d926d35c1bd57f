package speech

import (
	"context"
	"errors"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/empathy_phone/internal/ports"
)

// WhisperClient does speech-to-text over whisper-1. The underlying client is
// built once on first use and shared read-only across requests.
type WhisperClient struct {
	apiKey string

	once   sync.Once
	client *openai.Client
}

func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{apiKey: apiKey}
}

func (c *WhisperClient) Transcribe(ctx context.Context, filePath, language string) (string, error) {
	if c.apiKey == "" {
		return "", &ports.DependencyError{
			Stage: "stt",
			Kind:  ports.KindUnavailable,
			Err:   errors.New("OPENAI_API_KEY not set"),
		}
	}

	c.once.Do(func() {
		c.client = openai.NewClient(c.apiKey)
	})

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
		Language: language,
	})
	if err != nil {
		return "", classifySTTErr(err)
	}

	return strings.TrimSpace(resp.Text), nil
}

func classifySTTErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ports.DependencyError{Stage: "stt", Kind: ports.KindTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ports.DependencyError{Stage: "stt", Kind: ports.KindUpstream, Status: apiErr.HTTPStatusCode, Err: err}
	}

	return &ports.DependencyError{Stage: "stt", Kind: ports.KindUpstream, Err: err}
}
