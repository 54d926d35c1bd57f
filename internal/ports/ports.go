package ports

import "context"

type STTClient interface {
	Transcribe(ctx context.Context, filePath, language string) (string, error)
}

type TTSClient interface {
	Synthesize(ctx context.Context, voiceID, text string) ([]byte, error)
}

type ReplyClient interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

type TalkService interface {
	Talk(ctx context.Context, requestID string, in TalkInput) (*TalkResult, error)
}

// TalkInput is the canonical request record after content-type normalization.
// Exactly one of Text / Audio drives the pipeline: inline text always wins.
type TalkInput struct {
	Text         string
	Audio        []byte
	AudioName    string
	Voice        string
	Language     string
	SystemPrompt string
}

type TalkResult struct {
	Text  string
	Audio []byte // mp3
}
