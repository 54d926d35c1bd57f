package config

import (
	"os"
	"strconv"
	"time"
)

const DefaultVoiceID = "EXAVITQu4vr4xnSDxMaL"

// Config is read from env once at startup and stays read-only afterwards.
// Missing credentials are not fatal here: the stage that needs them fails
// per request with 503 instead.
type Config struct {
	Port string

	OpenAIKey string // Whisper STT
	HFToken   string // LLM via HF router
	HFModel   string
	HFBaseURL string
	ElevenKey string // ElevenLabs TTS

	DefaultVoice string
	STTLanguage  string

	STTTimeout time.Duration
	LLMTimeout time.Duration
	TTSTimeout time.Duration

	RatePerMinute int
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),

		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		HFToken:   os.Getenv("HF_API_TOKEN"),
		HFModel:   getenv("HF_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
		HFBaseURL: getenv("HF_BASE_URL", "https://router.huggingface.co/v1"),
		ElevenKey: os.Getenv("ELEVENLABS_API_KEY"),

		DefaultVoice: getenv("VOICE_ID", DefaultVoiceID),
		STTLanguage:  getenv("STT_LANGUAGE", "fi"),

		STTTimeout: getDuration("STT_TIMEOUT", 60*time.Second),
		LLMTimeout: getDuration("LLM_TIMEOUT", 60*time.Second),
		TTSTimeout: getDuration("TTS_TIMEOUT", 120*time.Second),

		RatePerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
