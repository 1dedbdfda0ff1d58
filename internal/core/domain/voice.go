package domain

// VoiceStatus reports what happened to the audio part of a reply.
type VoiceStatus string

// Voice statuses.
const (
	// VoiceNotRequested means the mode produced text only.
	VoiceNotRequested VoiceStatus = "not_requested"

	// VoiceGenerated means audio was synthesized.
	VoiceGenerated VoiceStatus = "generated"

	// VoiceUnavailable means no TTS service is configured.
	VoiceUnavailable VoiceStatus = "unavailable"

	// VoiceQuotaExceeded means the monthly budget would have been exceeded.
	VoiceQuotaExceeded VoiceStatus = "quota_exceeded"

	// VoiceSkippedEmpty means there was no text to speak.
	VoiceSkippedEmpty VoiceStatus = "empty"
)

// SpeechResult is the outcome of a voice request. Audio is nil unless
// Status is VoiceGenerated.
type SpeechResult struct {
	Audio      []byte
	Status     VoiceStatus
	Characters int
}

// VoiceUsage is a snapshot of the monthly character budget.
type VoiceUsage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// Remaining returns the characters left this month, never negative.
func (u VoiceUsage) Remaining() int {
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

// PercentUsed returns the used share of the budget in percent.
func (u VoiceUsage) PercentUsed() float64 {
	if u.Limit <= 0 {
		return 0
	}
	return float64(u.Used) / float64(u.Limit) * 100
}
