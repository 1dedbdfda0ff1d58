package driving

import (
	"context"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// ChatService drives one user turn end to end.
type ChatService interface {
	// Chat answers a question. LLM or TTS transport failures are returned
	// as errors; an exhausted voice budget is a degraded success.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error)
}

// VoiceService speaks shaped text within the monthly budget.
type VoiceService interface {
	// Available reports whether a TTS service is configured.
	Available() bool

	// Speak synthesizes text, enforcing the per-call ceiling and the
	// monthly budget before calling the TTS service.
	Speak(ctx context.Context, text string) (*domain.SpeechResult, error)

	// Usage returns the current month's budget snapshot.
	Usage(ctx context.Context) (domain.VoiceUsage, error)

	// ResetUsage zeroes the current month's counter.
	ResetUsage(ctx context.Context) error
}
