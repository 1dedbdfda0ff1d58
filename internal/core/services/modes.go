package services

import (
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// DefaultFallbackMarker is the phrase a resident-only mode answers with when
// the resident documents do not cover the question.
const DefaultFallbackMarker = "Please stand by, I'm researching that"

// Default output budgets per mode.
const (
	VoiceMaxTokens         = 300
	VoiceMaxWords          = 80
	VoiceResearchMaxTokens = 1000
	VoiceResearchMaxWords  = 150
	TextMaxTokens          = 2000
	ResearchMaxTokens      = 4096
)

// DefaultModes returns the four named configurations of the chat turn.
func DefaultModes(maxToolRounds int) map[domain.ChatMode]domain.ModeConfig {
	if maxToolRounds <= 0 {
		maxToolRounds = DefaultMaxToolRounds
	}
	return map[domain.ChatMode]domain.ModeConfig{
		domain.ModeVoice: {
			Mode:          domain.ModeVoice,
			MaxTokens:     VoiceMaxTokens,
			MaxToolRounds: maxToolRounds,
			Profile:       domain.ProfileSpeech,
			MaxWords:      VoiceMaxWords,
			Voice:         true,
			EscalateTo:    domain.ModeVoiceResearch,
		},
		domain.ModeVoiceResearch: {
			Mode:          domain.ModeVoiceResearch,
			ToolsEnabled:  true,
			MaxTokens:     VoiceResearchMaxTokens,
			MaxToolRounds: maxToolRounds,
			Profile:       domain.ProfileSpeech,
			MaxWords:      VoiceResearchMaxWords,
			Voice:         true,
		},
		domain.ModeText: {
			Mode:          domain.ModeText,
			MaxTokens:     TextMaxTokens,
			MaxToolRounds: maxToolRounds,
			Profile:       domain.ProfileDisplay,
			EscalateTo:    domain.ModeResearch,
		},
		domain.ModeResearch: {
			Mode:          domain.ModeResearch,
			ToolsEnabled:  true,
			MaxTokens:     ResearchMaxTokens,
			MaxToolRounds: maxToolRounds,
			Profile:       domain.ProfileDisplay,
		},
	}
}
