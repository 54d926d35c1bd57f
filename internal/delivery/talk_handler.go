package delivery

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Vovarama1992/empathy_phone/internal/ports"
	"github.com/Vovarama1992/empathy_phone/internal/talk"
)

type TalkHandler struct {
	talkService ports.TalkService
	log         *logger.ZapLogger
}

func NewTalkHandler(talkService ports.TalkService, log *logger.ZapLogger) *TalkHandler {
	return &TalkHandler{
		talkService: talkService,
		log:         log,
	}
}

type talkResponse struct {
	RequestID   string `json:"request_id"`
	Text        string `json:"text"`
	AudioBase64 string `json:"audio_base64"`
	AudioFormat string `json:"audio_format"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (h *TalkHandler) Talk(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	in, err := parseTalkInput(r)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	res, err := h.talkService.Talk(r.Context(), requestID, *in)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, talkResponse{
		RequestID:   requestID,
		Text:        res.Text,
		AudioBase64: base64.StdEncoding.EncodeToString(res.Audio),
		AudioFormat: "mp3",
	})
}

// writeError is the single place where pipeline failures become HTTP
// statuses. Nothing upstream-specific leaks past here.
func (h *TalkHandler) writeError(w http.ResponseWriter, requestID string, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	var dep *ports.DependencyError
	switch {
	case errors.Is(err, errUnsupportedMedia):
		status = http.StatusUnsupportedMediaType
		msg = "unsupported content type"
	case errors.Is(err, errInvalidPayload):
		status = http.StatusBadRequest
		msg = "invalid request body"
	case errors.Is(err, talk.ErrMissingInput):
		status = http.StatusBadRequest
		msg = "provide either text or audio input"
	case errors.As(err, &dep):
		switch dep.Kind {
		case ports.KindUnavailable:
			status = http.StatusServiceUnavailable
		case ports.KindTimeout:
			status = http.StatusGatewayTimeout
		default:
			status = http.StatusBadGateway
			if dep.Status >= 400 {
				status = dep.Status
			}
		}
		msg = dep.Error()
	}

	h.log.Log(logger.LogEntry{
		Level:   "warn",
		Message: "talk request failed: " + msg,
		Error:   err,
	})

	writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
