package driven

import "context"

// SpeechSynthesizer converts text to audio.
// The caller keeps text under the per-call ceiling and enforces the
// monthly budget before calling.
type SpeechSynthesizer interface {
	// Synthesize returns MPEG audio for the text.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// VoiceID returns the configured voice.
	VoiceID() string
}
