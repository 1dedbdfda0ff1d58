package domain

import (
	"encoding/json"
	"strings"
)

// Role tags a conversation message.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role may appear in client history.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// BlockType identifies the kind of a content block.
type BlockType string

// Content block types.
const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// ContentBlock is one element of a message: plain text, a tool invocation
// requested by the model, or the result of such an invocation.
type ContentBlock struct {
	Type BlockType

	// Text is set for BlockText.
	Text string

	// ToolCall is set for BlockToolUse.
	ToolCall *ToolCall

	// ToolResult is set for BlockToolResult.
	ToolResult *ToolResult
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// Message is a role-tagged entry of the running conversation.
type Message struct {
	Role   Role
	Blocks []ContentBlock
}

// TextMessage builds a message holding a single text block.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Blocks: []ContentBlock{TextBlock(text)}}
}

// Text joins the text blocks of the message.
func (m Message) Text() string {
	var parts []string
	for _, b := range m.Blocks {
		if b.Type == BlockText && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ToolCalls returns the tool invocations requested in the message, in order.
func (m Message) ToolCalls() []ToolCall {
	var calls []ToolCall
	for _, b := range m.Blocks {
		if b.Type == BlockToolUse && b.ToolCall != nil {
			calls = append(calls, *b.ToolCall)
		}
	}
	return calls
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	// ID correlates the call with its result.
	ID string

	// Name is the declared tool name.
	Name string

	// Input holds the raw JSON arguments.
	Input json.RawMessage
}

// ToolResult is the outcome of one ToolCall.
type ToolResult struct {
	CallID  string
	Content string
	IsError bool
}

// ToolSpec declares a callable tool to the model.
type ToolSpec struct {
	Name        string
	Description string

	// InputSchema is the JSON Schema of the arguments, surfaced verbatim.
	InputSchema json.RawMessage
}

// HistoryEntry is a client-supplied conversation entry. It is untrusted
// input and must pass FilterHistory before use.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FilterHistory drops empty or malformed entries and converts the rest into
// messages. The input slice is not modified.
func FilterHistory(entries []HistoryEntry) []Message {
	messages := make([]Message, 0, len(entries))
	for _, e := range entries {
		role := Role(strings.ToLower(strings.TrimSpace(e.Role)))
		if !role.IsValid() {
			continue
		}
		if strings.TrimSpace(e.Content) == "" {
			continue
		}
		messages = append(messages, TextMessage(role, e.Content))
	}
	return messages
}
