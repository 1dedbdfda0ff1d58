package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChatMode_IsValid tests all valid and invalid chat modes
func TestChatMode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		mode     ChatMode
		expected bool
	}{
		{name: "voice is valid", mode: ModeVoice, expected: true},
		{name: "voice-research is valid", mode: ModeVoiceResearch, expected: true},
		{name: "text is valid", mode: ModeText, expected: true},
		{name: "research is valid", mode: ModeResearch, expected: true},
		{name: "empty string is invalid", mode: ChatMode(""), expected: false},
		{name: "unknown mode is invalid", mode: ChatMode("fast"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.IsValid())
		})
	}
}

// TestChatMode_Description tests that every valid mode has a description
func TestChatMode_Description(t *testing.T) {
	for _, m := range []ChatMode{ModeVoice, ModeVoiceResearch, ModeText, ModeResearch} {
		assert.NotEqual(t, "Unknown", m.Description(), m.String())
	}
	assert.Equal(t, "Unknown", ChatMode("x").Description())
}
