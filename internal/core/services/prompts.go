package services

import (
	"strings"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// Prompts holds the instruction text composed into the system preamble.
type Prompts struct {
	// System is the base instruction for every mode.
	System string

	// Tools is appended when the retrieval tools are enabled.
	Tools string

	// Voice is appended for speech profiles.
	Voice string
}

// DefaultPrompts returns the built-in instructions.
func DefaultPrompts() Prompts {
	return Prompts{
		System: "You answer questions about the Churchill Falls Memorandum of Understanding " +
			"and related documents. Base answers on the reference documents provided. " +
			"If the documents do not cover a question, say so.",
		Tools: "Supplementary documents are available through the search_documents, " +
			"get_document and list_documents tools. Use them when the reference documents " +
			"do not answer the question.",
		Voice: "Your answer will be spoken aloud. Keep it short and conversational, " +
			"without lists, headings or other formatting.",
	}
}

// ByName returns the prompts keyed by their store names.
func (p Prompts) ByName() map[string]string {
	return map[string]string{
		driven.PromptSystem: p.System,
		driven.PromptTools:  p.Tools,
		driven.PromptVoice:  p.Voice,
	}
}

// LoadPrompts reads each prompt from store, keeping the built-in text for
// any prompt that fails to load or is blank.
func LoadPrompts(store driven.PromptStore) Prompts {
	p := DefaultPrompts()
	if store == nil {
		return p
	}
	load := func(name string, dst *string) {
		text, err := store.Load(name)
		if err != nil {
			logger.Warn("Using built-in %s prompt: %v", name, err)
			return
		}
		if text = strings.TrimSpace(text); text != "" {
			*dst = text
		}
	}
	load(driven.PromptSystem, &p.System)
	load(driven.PromptTools, &p.Tools)
	load(driven.PromptVoice, &p.Voice)
	return p
}

// buildSystem composes the preamble for one mode. The resident context is
// always included; fallbackMarker is requested from modes that can escalate.
func buildSystem(p Prompts, mode domain.ModeConfig, residentContext, fallbackMarker string) string {
	var b strings.Builder
	b.WriteString(p.System)
	if mode.Profile == domain.ProfileSpeech && p.Voice != "" {
		b.WriteString("\n\n")
		b.WriteString(p.Voice)
	}
	if mode.ToolsEnabled && p.Tools != "" {
		b.WriteString("\n\n")
		b.WriteString(p.Tools)
	}
	if mode.EscalateTo != "" && fallbackMarker != "" {
		b.WriteString("\n\nIf the reference documents below do not contain the answer, reply with exactly: \"")
		b.WriteString(fallbackMarker)
		b.WriteString("\"")
	}
	b.WriteString("\n\nREFERENCE DOCUMENTS:")
	b.WriteString(residentContext)
	return b.String()
}
