package driven

// Prompt names.
const (
	PromptSystem = "system"
	PromptTools  = "tools"
	PromptVoice  = "voice"
)

// PromptStore provides the instruction text composed into the system preamble.
type PromptStore interface {
	// Load returns the prompt for the given name.
	Load(name string) (string, error)
}
