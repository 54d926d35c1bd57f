package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/empathy_phone/internal/ports"
)

// HFClient talks to the Hugging Face router, which speaks the
// OpenAI chat-completions protocol.
type HFClient struct {
	token  string
	model  string
	client *openai.Client
}

func NewHFClient(token, model, baseURL string) *HFClient {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &HFClient{
		token:  token,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *HFClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	if c.token == "" {
		return "", &ports.DependencyError{
			Stage: "llm",
			Kind:  ports.KindUnavailable,
			Err:   errors.New("HF_API_TOKEN not set"),
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
		MaxTokens:   120,
		Temperature: 0.7,
	})
	if err != nil {
		return "", classifyErr(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ports.DependencyError{
			Stage: "llm",
			Kind:  ports.KindUpstream,
			Err:   errors.New("empty completion choices"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ports.DependencyError{Stage: "llm", Kind: ports.KindTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ports.DependencyError{Stage: "llm", Kind: ports.KindUpstream, Status: apiErr.HTTPStatusCode, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ports.DependencyError{Stage: "llm", Kind: ports.KindUpstream, Status: reqErr.HTTPStatusCode, Err: err}
	}

	return &ports.DependencyError{Stage: "llm", Kind: ports.KindUpstream, Err: err}
}
