package talk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/empathy_phone/internal/config"
	"github.com/Vovarama1992/empathy_phone/internal/ports"
)

const defaultSystemPrompt = "You are a warm, empathetic assistant. " +
	"If user speaks Finnish, answer in Finnish. " +
	"Otherwise answer in English. Keep replies short (1–3 sentences)."

var ErrMissingInput = errors.New("no text or audio input")

// Service runs the pipeline: (optional STT) → LLM reply → TTS.
// Stages are strictly sequential, one attempt each.
type Service struct {
	stt ports.STTClient
	llm ports.ReplyClient
	tts ports.TTSClient
	cfg *config.Config
	log *zap.Logger
}

func NewService(stt ports.STTClient, llm ports.ReplyClient, tts ports.TTSClient, cfg *config.Config, log *zap.Logger) *Service {
	return &Service{
		stt: stt,
		llm: llm,
		tts: tts,
		cfg: cfg,
		log: log,
	}
}

func (s *Service) Talk(ctx context.Context, requestID string, in ports.TalkInput) (*ports.TalkResult, error) {
	start := time.Now()
	log := s.log.With(zap.String("request_id", requestID))

	text := strings.TrimSpace(in.Text)

	// Inline text wins; audio is transcribed only when no text was supplied.
	if text == "" && len(in.Audio) > 0 {
		transcript, err := s.transcribe(ctx, log, in)
		if err != nil {
			return nil, err
		}
		text = transcript
	}

	if text == "" {
		log.Warn("no prompt text supplied or detected from audio")
		return nil, ErrMissingInput
	}

	systemPrompt := strings.TrimSpace(in.SystemPrompt)
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	reply, err := s.complete(ctx, log, systemPrompt, text)
	if err != nil {
		return nil, err
	}

	voiceID := strings.TrimSpace(in.Voice)
	if voiceID == "" {
		voiceID = s.cfg.DefaultVoice
	}

	audio, err := s.synthesize(ctx, log, voiceID, reply)
	if err != nil {
		return nil, err
	}

	log.Info("talk done",
		zap.Duration("total", time.Since(start)),
		zap.Int("reply_chars", len(reply)),
		zap.Int("audio_bytes", len(audio)),
	)

	return &ports.TalkResult{Text: reply, Audio: audio}, nil
}

// transcribe writes the uploaded bytes to a request-scoped temp file and
// feeds it to the STT client. The file is removed on every path; a failed
// removal is only logged.
func (s *Service) transcribe(ctx context.Context, log *zap.Logger, in ports.TalkInput) (string, error) {
	suffix := filepath.Ext(in.AudioName)
	if suffix == "" {
		suffix = ".m4a"
	}

	tmp, err := os.CreateTemp("", "talk-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Warn("failed to delete temp file", zap.String("path", tmpPath), zap.Error(err))
		}
	}()

	if _, err := tmp.Write(in.Audio); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp audio file: %w", err)
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = s.cfg.STTLanguage
	}

	log.Info("transcribing audio", zap.String("file", tmpPath), zap.Int("bytes", len(in.Audio)))

	sttCtx, cancel := context.WithTimeout(ctx, s.cfg.STTTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.stt.Transcribe(sttCtx, tmpPath, language)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	log.Info("stt done", zap.Duration("took", time.Since(start)), zap.Int("chars", len(text)))
	return text, nil
}

func (s *Service) complete(ctx context.Context, log *zap.Logger, systemPrompt, userText string) (string, error) {
	llmCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.llm.Complete(llmCtx, systemPrompt, userText)
	if err != nil {
		return "", err
	}

	log.Info("llm reply", zap.Duration("took", time.Since(start)), zap.Int("chars", len(reply)))
	return reply, nil
}

func (s *Service) synthesize(ctx context.Context, log *zap.Logger, voiceID, text string) ([]byte, error) {
	ttsCtx, cancel := context.WithTimeout(ctx, s.cfg.TTSTimeout)
	defer cancel()

	start := time.Now()
	audio, err := s.tts.Synthesize(ttsCtx, voiceID, text)
	if err != nil {
		return nil, err
	}

	log.Info("tts done", zap.Duration("took", time.Since(start)), zap.String("voice", voiceID), zap.Int("bytes", len(audio)))
	return audio, nil
}
