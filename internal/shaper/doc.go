// Package shaper converts raw model text into display or speech form.
//
// Transforms are expressed as ordered (pattern, replacement) rule lists
// applied by Apply, and composed into per-profile pipelines:
//
//	display: StripMarkup -> TruncateWords
//	speech:  StripMarkup -> TruncateWords, then ExpandForSpeech for the TTS text
package shaper
