// Package anthropic provides an LLM service adapter using Anthropic API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-sonnet-4-5-20250929"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1024

	// AnthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"

	providerName = "anthropic"
)

// Config holds configuration for the Anthropic LLM service.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the LLM model to use (default: claude-sonnet-4-5-20250929).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides LLM operations using Anthropic API.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// messagesRequest is the Anthropic /v1/messages request format.
type messagesRequest struct {
	Model     string            `json:"model"`
	Messages  []messagesMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
	Tools     []toolDefinition  `json:"tools,omitempty"`
}

// messagesMessage is the Anthropic message format.
type messagesMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

// contentBlock covers the text, tool_use and tool_result block shapes.
type contentBlock struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

// toolDefinition declares one tool to the model.
type toolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// messagesResponse is the Anthropic /v1/messages response format.
type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewLLMService creates a new Anthropic LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required: %w", domain.ErrMisconfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Chat sends the conversation, with tool declarations when present, and
// returns the model's turn as ordered content blocks.
func (s *LLMService) Chat(ctx context.Context, req driven.LLMRequest) (*driven.LLMResponse, error) {
	// Anthropic requires max_tokens to be set
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := messagesRequest{
		Model:     s.model,
		Messages:  encodeMessages(req.Messages),
		MaxTokens: maxTokens,
		System:    req.System,
		Tools:     encodeTools(req.Tools),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/v1/messages",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &domain.ProviderError{
			Provider:  providerName,
			Code:      "network",
			Message:   "send request failed",
			Retryable: true,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var msgResp messagesResponse
	decodeErr := json.Unmarshal(body, &msgResp)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, msgResp.Error, body)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if msgResp.Error != nil {
		return nil, statusError(http.StatusInternalServerError, msgResp.Error, body)
	}
	if len(msgResp.Content) == 0 && msgResp.StopReason != string(driven.StopEndTurn) {
		return nil, &domain.ProviderError{
			Provider:   providerName,
			Code:       "empty_response",
			Message:    "no response content returned",
			Retryable:  true,
			StatusCode: resp.StatusCode,
		}
	}

	return &driven.LLMResponse{
		Message:      decodeMessage(msgResp.Content),
		StopReason:   driven.StopReason(msgResp.StopReason),
		InputTokens:  msgResp.Usage.InputTokens,
		OutputTokens: msgResp.Usage.OutputTokens,
	}, nil
}

func (s *LLMService) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
}

// encodeMessages converts domain messages into the wire format.
func encodeMessages(messages []domain.Message) []messagesMessage {
	out := make([]messagesMessage, 0, len(messages))
	for _, msg := range messages {
		blocks := make([]contentBlock, 0, len(msg.Blocks))
		for _, b := range msg.Blocks {
			switch b.Type {
			case domain.BlockText:
				if b.Text == "" {
					continue
				}
				blocks = append(blocks, contentBlock{Type: "text", Text: b.Text})
			case domain.BlockToolUse:
				if b.ToolCall == nil {
					continue
				}
				input := b.ToolCall.Input
				if len(input) == 0 {
					input = json.RawMessage("{}")
				}
				blocks = append(blocks, contentBlock{
					Type:  "tool_use",
					ID:    b.ToolCall.ID,
					Name:  b.ToolCall.Name,
					Input: input,
				})
			case domain.BlockToolResult:
				if b.ToolResult == nil {
					continue
				}
				blocks = append(blocks, contentBlock{
					Type:      "tool_result",
					ToolUseID: b.ToolResult.CallID,
					Content:   b.ToolResult.Content,
					IsError:   b.ToolResult.IsError,
				})
			}
		}
		if len(blocks) == 0 {
			continue
		}
		out = append(out, messagesMessage{Role: string(msg.Role), Content: blocks})
	}
	return out
}

func encodeTools(specs []domain.ToolSpec) []toolDefinition {
	if len(specs) == 0 {
		return nil
	}
	tools := make([]toolDefinition, len(specs))
	for i, spec := range specs {
		tools[i] = toolDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.InputSchema,
		}
	}
	return tools
}

// decodeMessage converts response blocks into an assistant message,
// keeping their order. Unknown block types are skipped.
func decodeMessage(blocks []contentBlock) domain.Message {
	msg := domain.Message{Role: domain.RoleAssistant}
	for _, b := range blocks {
		switch b.Type {
		case "text":
			msg.Blocks = append(msg.Blocks, domain.TextBlock(b.Text))
		case "tool_use":
			msg.Blocks = append(msg.Blocks, domain.ContentBlock{
				Type: domain.BlockToolUse,
				ToolCall: &domain.ToolCall{
					ID:    b.ID,
					Name:  b.Name,
					Input: b.Input,
				},
			})
		}
	}
	return msg
}

// statusError maps a non-200 response onto a ProviderError.
func statusError(status int, apiErr *apiError, body []byte) error {
	pe := &domain.ProviderError{
		Provider:   providerName,
		StatusCode: status,
		Message:    strings.TrimSpace(string(body)),
	}
	if apiErr != nil {
		pe.Code = apiErr.Type
		pe.Message = apiErr.Message
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		pe.Code = "auth"
		pe.Cause = domain.ErrMisconfigured
	case status == http.StatusTooManyRequests:
		pe.Code = "rate_limited"
		pe.Retryable = true
	case status == 529 || status >= 500:
		if pe.Code == "" {
			pe.Code = "server_error"
		}
		pe.Retryable = true
	default:
		if pe.Code == "" {
			pe.Code = "bad_request"
		}
	}
	if pe.Message == "" {
		pe.Message = http.StatusText(status)
	}
	return pe
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /v1/models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("anthropic: failed to create ping request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("anthropic: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		var msgResp messagesResponse
		_ = json.Unmarshal(body, &msgResp)
		return statusError(resp.StatusCode, msgResp.Error, body)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

