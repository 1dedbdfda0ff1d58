package domain

// ChatMode names one configuration of the chat turn.
type ChatMode string

// Available chat modes.
const (
	// ModeVoice answers quickly from the resident documents for speech.
	ModeVoice ChatMode = "voice"

	// ModeVoiceResearch adds the retrieval tools to the voice path.
	ModeVoiceResearch ChatMode = "voice-research"

	// ModeText answers from the resident documents for on-screen display.
	ModeText ChatMode = "text"

	// ModeResearch adds the retrieval tools to the text path.
	ModeResearch ChatMode = "research"
)

// IsValid returns true if the chat mode is recognised.
func (m ChatMode) IsValid() bool {
	switch m {
	case ModeVoice, ModeVoiceResearch, ModeText, ModeResearch:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ChatMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ChatMode) Description() string {
	switch m {
	case ModeVoice:
		return "Voice (resident documents, spoken answer)"
	case ModeVoiceResearch:
		return "Voice Research (resident documents + search tools, spoken answer)"
	case ModeText:
		return "Text (resident documents)"
	case ModeResearch:
		return "Research (resident documents + search tools)"
	default:
		return "Unknown"
	}
}

// ShapingProfile selects the response shaping pipeline.
type ShapingProfile string

// Shaping profiles.
const (
	ProfileDisplay ShapingProfile = "display"
	ProfileSpeech  ShapingProfile = "speech"
)

// ModeConfig parameterises the single orchestration code path.
type ModeConfig struct {
	Mode ChatMode

	// ToolsEnabled advertises the retrieval tools to the model.
	ToolsEnabled bool

	// MaxTokens bounds the model output per call.
	MaxTokens int

	// MaxToolRounds caps tool rounds per turn.
	MaxToolRounds int

	// Profile selects the response shaping pipeline.
	Profile ShapingProfile

	// MaxWords truncates the shaped answer (0 = no limit).
	MaxWords int

	// Voice requests speech synthesis of the shaped answer.
	Voice bool

	// EscalateTo is re-run once when the answer carries the fallback marker.
	EscalateTo ChatMode
}
