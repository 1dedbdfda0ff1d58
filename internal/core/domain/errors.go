package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTool indicates a tool call named no declared tool.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNoResidentDocuments indicates the resident partition is empty after
	// load. The server must refuse to start.
	ErrNoResidentDocuments = errors.New("no resident documents loaded")

	// ErrLLMUnavailable indicates the LLM service could not produce a turn.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrVoiceUnavailable indicates the TTS service is not configured.
	ErrVoiceUnavailable = errors.New("voice service unavailable")

	// ErrQuotaExceeded indicates the monthly voice budget would be exceeded.
	ErrQuotaExceeded = errors.New("voice quota exceeded")

	// ErrMisconfigured indicates a configuration problem that retrying will
	// not fix (missing credentials, invalid mode).
	ErrMisconfigured = errors.New("misconfigured")
)

// ProviderError is a failure reported by an external collaborator
// (the LLM or the TTS service).
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	Retryable  bool
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	return e.Provider + " " + e.Code + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ToolErrorKind classifies a tool failure.
type ToolErrorKind string

// Tool error kinds.
const (
	ToolErrorInvalidInput ToolErrorKind = "invalid_input"
	ToolErrorNotFound     ToolErrorKind = "not_found"
	ToolErrorUnknownTool  ToolErrorKind = "unknown_tool"
)

// ToolError is a structured failure of a single tool call. It is fed back
// to the model rather than aborting the turn.
type ToolError struct {
	Tool    string
	Kind    ToolErrorKind
	Message string
}

func (e *ToolError) Error() string {
	return e.Tool + ": " + e.Message
}

// Unwrap maps the kind onto the matching sentinel so callers can use errors.Is.
func (e *ToolError) Unwrap() error {
	switch e.Kind {
	case ToolErrorInvalidInput:
		return ErrInvalidInput
	case ToolErrorNotFound:
		return ErrNotFound
	case ToolErrorUnknownTool:
		return ErrUnknownTool
	default:
		return nil
	}
}

// IsRetryable reports whether err is worth retrying later rather than a
// misconfiguration.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMisconfigured) {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return errors.Is(err, ErrLLMUnavailable)
}
