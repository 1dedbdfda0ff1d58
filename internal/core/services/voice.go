package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
	"github.com/lillianfidler/churchill-falls-assistant/internal/metrics"
	"github.com/lillianfidler/churchill-falls-assistant/internal/shaper"
)

// Ensure VoiceService implements the interface.
var _ driving.VoiceService = (*VoiceService)(nil)

// Voice budget defaults.
const (
	DefaultMonthlyVoiceBudget = 100000
	DefaultMaxSpeechChars     = 10000
)

// VoiceService speaks text within the per-call ceiling and monthly budget.
type VoiceService struct {
	tts      driven.SpeechSynthesizer
	usage    driven.UsageTracker
	budget   int
	maxChars int
}

// NewVoiceService creates a voice service. tts may be nil, in which case
// every request reports domain.VoiceUnavailable.
func NewVoiceService(tts driven.SpeechSynthesizer, usage driven.UsageTracker, budget, maxChars int) *VoiceService {
	if budget <= 0 {
		budget = DefaultMonthlyVoiceBudget
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxSpeechChars
	}
	return &VoiceService{tts: tts, usage: usage, budget: budget, maxChars: maxChars}
}

// Available reports whether a TTS service is configured.
func (s *VoiceService) Available() bool {
	return s.tts != nil
}

// Speak truncates text to the per-call ceiling, checks the monthly budget
// and only then calls the TTS service. Usage is recorded after a
// successful call.
func (s *VoiceService) Speak(ctx context.Context, text string) (*domain.SpeechResult, error) {
	res, err := s.speak(ctx, text)
	status := "failed"
	if err == nil {
		status = string(res.Status)
	}
	metrics.VoiceRequestsTotal.WithLabelValues(status).Inc()
	return res, err
}

func (s *VoiceService) speak(ctx context.Context, text string) (*domain.SpeechResult, error) {
	if s.tts == nil {
		return &domain.SpeechResult{Status: domain.VoiceUnavailable}, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return &domain.SpeechResult{Status: domain.VoiceSkippedEmpty}, nil
	}
	if utf8.RuneCountInString(text) > s.maxChars {
		text = shaper.TruncateChars(text, s.maxChars-len(shaper.ContinuationMarker))
		logger.Debug("Speech text truncated to %d characters", utf8.RuneCountInString(text))
	}
	chars := utf8.RuneCountInString(text)

	used, err := s.usage.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading voice usage: %w", err)
	}
	if used+chars > s.budget {
		logger.Warn("Voice budget exhausted: %d used + %d requested > %d", used, chars, s.budget)
		return &domain.SpeechResult{Status: domain.VoiceQuotaExceeded, Characters: chars}, nil
	}

	audio, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}

	metrics.VoiceCharactersTotal.Add(float64(chars))
	total, err := s.usage.Increment(ctx, chars)
	if err != nil {
		logger.Warn("Failed to record voice usage: %v", err)
	} else {
		logger.Info("Voice usage: %d/%d characters (%.1f%%)", total, s.budget, float64(total)/float64(s.budget)*100)
	}

	return &domain.SpeechResult{Audio: audio, Status: domain.VoiceGenerated, Characters: chars}, nil
}

// Usage returns the current month's budget snapshot.
func (s *VoiceService) Usage(ctx context.Context) (domain.VoiceUsage, error) {
	used, err := s.usage.Get(ctx)
	if err != nil {
		return domain.VoiceUsage{}, fmt.Errorf("reading voice usage: %w", err)
	}
	return domain.VoiceUsage{Used: used, Limit: s.budget}, nil
}

// ResetUsage zeroes the current month's counter.
func (s *VoiceService) ResetUsage(ctx context.Context) error {
	if err := s.usage.Reset(ctx); err != nil {
		return fmt.Errorf("resetting voice usage: %w", err)
	}
	logger.Info("Voice usage reset")
	return nil
}
