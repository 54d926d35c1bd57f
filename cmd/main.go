package main

import (
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/empathy_phone/internal/ai"
	"github.com/Vovarama1992/empathy_phone/internal/config"
	"github.com/Vovarama1992/empathy_phone/internal/delivery"
	"github.com/Vovarama1992/empathy_phone/internal/speech"
	"github.com/Vovarama1992/empathy_phone/internal/talk"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// Missing credentials only disable their stage; the server still starts.
	if cfg.HFToken == "" {
		baseLogger.Warn("HF_API_TOKEN missing; LLM calls will fail")
	}
	if cfg.ElevenKey == "" {
		baseLogger.Warn("ELEVENLABS_API_KEY missing; TTS will fail")
	}
	if cfg.OpenAIKey == "" {
		baseLogger.Warn("OPENAI_API_KEY missing; STT will fail")
	}

	// =========================================================================
	// CLIENTS (STT / LLM / TTS)
	// =========================================================================

	sttClient := speech.NewWhisperClient(cfg.OpenAIKey)
	replyClient := ai.NewHFClient(cfg.HFToken, cfg.HFModel, cfg.HFBaseURL)
	ttsClient := speech.NewElevenLabsClient(cfg.ElevenKey)

	// =========================================================================
	// SERVICES
	// =========================================================================

	talkService := talk.NewService(sttClient, replyClient, ttsClient, cfg, baseLogger)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	talkHandler := delivery.NewTalkHandler(talkService, zl)
	healthHandler := delivery.NewHealthHandler()

	delivery.RegisterRoutes(r, talkHandler, healthHandler, cfg.RatePerMinute)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "empathy_phone",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
