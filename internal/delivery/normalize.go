package delivery

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/empathy_phone/internal/ports"
)

const maxAudioFormSize = 20 << 20

var (
	errUnsupportedMedia = errors.New("unsupported content type")
	errInvalidPayload   = errors.New("invalid payload")
)

// parseTalkInput collapses the three accepted encodings into one canonical
// record so the pipeline never branches on content type again.
func parseTalkInput(r *http.Request) (*ports.TalkInput, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case "application/json":
		return parseJSONInput(r)
	case "multipart/form-data":
		return parseMultipartInput(r)
	case "application/x-www-form-urlencoded":
		return parseFormInput(r)
	case "":
		// No body at all; the pipeline reports missing input.
		return &ports.TalkInput{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedMedia, mediaType)
	}
}

func parseJSONInput(r *http.Request) (*ports.TalkInput, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	var req struct {
		Text         string `json:"text"`
		Prompt       string `json:"prompt"`
		Voice        string `json:"voice"`
		Language     string `json:"language"`
		SystemPrompt string `json:"system_prompt"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	return &ports.TalkInput{
		Text:         firstNonEmpty(req.Text, req.Prompt),
		Voice:        strings.TrimSpace(req.Voice),
		Language:     strings.TrimSpace(req.Language),
		SystemPrompt: strings.TrimSpace(req.SystemPrompt),
	}, nil
}

func parseMultipartInput(r *http.Request) (*ports.TalkInput, error) {
	if err := r.ParseMultipartForm(maxAudioFormSize); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	in := &ports.TalkInput{
		Text:         firstNonEmpty(r.FormValue("text"), r.FormValue("prompt")),
		Voice:        strings.TrimSpace(r.FormValue("voice")),
		Language:     strings.TrimSpace(r.FormValue("language")),
		SystemPrompt: strings.TrimSpace(r.FormValue("system_prompt")),
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil
		}
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	in.Audio = audio
	in.AudioName = header.Filename
	return in, nil
}

func parseFormInput(r *http.Request) (*ports.TalkInput, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	return &ports.TalkInput{
		Text:         firstNonEmpty(r.FormValue("text"), r.FormValue("prompt")),
		Voice:        strings.TrimSpace(r.FormValue("voice")),
		Language:     strings.TrimSpace(r.FormValue("language")),
		SystemPrompt: strings.TrimSpace(r.FormValue("system_prompt")),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
