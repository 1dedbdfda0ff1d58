package driven

import (
	"context"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// LLMService conducts one chat completion with optional tool use.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - Scripted fakes in tests
type LLMService interface {
	// Chat sends the conversation and returns the model turn.
	// Transport failures are returned as errors; the caller treats them as
	// fatal to the turn.
	Chat(ctx context.Context, req LLMRequest) (*LLMResponse, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// LLMRequest is one call to the model.
type LLMRequest struct {
	// System is the preamble, including resident document context.
	System string

	// Messages is the ordered conversation.
	Messages []domain.Message

	// Tools are the declared tools; empty disables tool use.
	Tools []domain.ToolSpec

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int
}

// StopReason explains why the model ended its turn.
type StopReason string

// Stop reasons.
const (
	StopEndTurn   StopReason = "end_turn"
	StopToolUse   StopReason = "tool_use"
	StopMaxTokens StopReason = "max_tokens"
)

// LLMResponse is the model turn.
type LLMResponse struct {
	// Message holds the ordered content blocks with RoleAssistant.
	Message domain.Message

	StopReason StopReason

	InputTokens  int
	OutputTokens int
}
