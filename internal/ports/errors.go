package ports

import "fmt"

type ErrorKind string

const (
	KindUnavailable ErrorKind = "dependency_unavailable" // required credential missing
	KindTimeout     ErrorKind = "dependency_timeout"
	KindUpstream    ErrorKind = "dependency_error"
)

// DependencyError is a classified failure of one pipeline stage, so the
// orchestrator and delivery layer never see raw client errors.
type DependencyError struct {
	Stage  string // "stt", "llm", "tts"
	Kind   ErrorKind
	Status int // upstream HTTP status when known, else 0
	Err    error
}

func (e *DependencyError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Stage, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
