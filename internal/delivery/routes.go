package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(r chi.Router, hTalk *TalkHandler, hHealth *HealthHandler, talkPerMinute int) {
	r.With(httputil.RecoverMiddleware).
		Get("/health", hHealth.Check)

	r.With(
		httputil.RecoverMiddleware,
		httprate.LimitByIP(talkPerMinute, time.Minute),
	).Post("/talk", hTalk.Talk)
}
