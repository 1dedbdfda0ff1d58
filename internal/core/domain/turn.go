package domain

import "time"

// ChatRequest is one user turn as received from a client.
type ChatRequest struct {
	Message string
	History []HistoryEntry
	Mode    ChatMode
}

// ChatReply is the shaped result of a user turn.
type ChatReply struct {
	Text string

	// Speech is nil for text-only modes.
	Speech *SpeechResult

	Mode      ChatMode
	Escalated bool
	Cached    bool

	// Rounds is the number of tool rounds executed and ToolCalls the
	// number of individual calls across them.
	Rounds    int
	ToolCalls int

	// CappedOut is true when the round cap ended the turn.
	CappedOut bool

	Duration time.Duration
}
