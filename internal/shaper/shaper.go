package shaper

import (
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// Shaped is the delivery split of a model answer.
type Shaped struct {
	// Display is returned to the client as text.
	Display string

	// Speech is sent to the TTS service. Empty for the display profile.
	Speech string
}

// Stage is one named step of a shaping pipeline.
type Stage struct {
	Name string
	Fn   func(string) string
}

// Pipeline runs stages in order.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run passes text through every stage.
func (p *Pipeline) Run(text string) string {
	for _, s := range p.stages {
		text = s.Fn(text)
	}
	return text
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// DisplayPipeline strips markup and truncates to maxWords.
func DisplayPipeline(maxWords int) *Pipeline {
	return NewPipeline(
		Stage{Name: "strip_markup", Fn: StripMarkup},
		Stage{Name: "truncate_words", Fn: func(s string) string { return TruncateWords(s, maxWords) }},
	)
}

// SpeechPipeline expands acronyms and units for a TTS engine.
func SpeechPipeline() *Pipeline {
	return NewPipeline(Stage{Name: "expand_for_speech", Fn: ExpandForSpeech})
}

// Shape produces the delivery split for a mode.
func Shape(text string, mode domain.ModeConfig) Shaped {
	out := Shaped{Display: DisplayPipeline(mode.MaxWords).Run(text)}
	if mode.Profile == domain.ProfileSpeech {
		out.Speech = SpeechPipeline().Run(out.Display)
	}
	return out
}
