// Package elevenlabs provides a speech synthesizer adapter using the ElevenLabs API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Ensure Synthesizer implements the interface.
var _ driven.SpeechSynthesizer = (*Synthesizer)(nil)

// Default configuration values.
const (
	DefaultBaseURL         = "https://api.elevenlabs.io"
	DefaultModelID         = "eleven_monolingual_v1"
	DefaultTimeout         = 30 * time.Second
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.75

	providerName = "elevenlabs"
)

// Config holds configuration for the ElevenLabs synthesizer.
type Config struct {
	// APIKey is the ElevenLabs API key (required).
	APIKey string

	// VoiceID selects the voice (required).
	VoiceID string

	// BaseURL is the API base URL (default: https://api.elevenlabs.io).
	BaseURL string

	// ModelID is the synthesis model (default: eleven_monolingual_v1).
	ModelID string

	Stability       float64
	SimilarityBoost float64

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Synthesizer converts text to MP3 audio.
type Synthesizer struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	voiceID  string
	modelID  string
	settings voiceSettings
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// NewSynthesizer creates a synthesizer. Both the API key and the voice ID
// are required; without them voice is unavailable.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.VoiceID = strings.TrimSpace(cfg.VoiceID)
	if cfg.APIKey == "" || cfg.VoiceID == "" {
		return nil, fmt.Errorf("elevenlabs: API key and voice ID are required: %w", domain.ErrVoiceUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.Stability == 0 {
		cfg.Stability = DefaultStability
	}
	if cfg.SimilarityBoost == 0 {
		cfg.SimilarityBoost = DefaultSimilarityBoost
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Synthesizer{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		voiceID: cfg.VoiceID,
		modelID: cfg.ModelID,
		settings: voiceSettings{
			Stability:       cfg.Stability,
			SimilarityBoost: cfg.SimilarityBoost,
			UseSpeakerBoost: true,
		},
	}, nil
}

// VoiceID returns the configured voice.
func (s *Synthesizer) VoiceID() string {
	return s.voiceID
}

// Synthesize returns MP3 audio for text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &domain.ProviderError{
			Provider: providerName,
			Code:     "invalid_input",
			Message:  "text is required",
			Cause:    domain.ErrInvalidInput,
		}
	}

	payload, err := json.Marshal(synthesizeRequest{
		Text:          text,
		ModelID:       s.modelID,
		VoiceSettings: s.settings,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	reqURL := s.baseURL + "/v1/text-to-speech/" + url.PathEscape(s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{
			Provider:  providerName,
			Code:      "network",
			Message:   "tts request failed",
			Retryable: true,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{
			Provider:   providerName,
			Code:       "network",
			Message:    "failed to read TTS response",
			Retryable:  true,
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if len(body) == 0 {
			return nil, &domain.ProviderError{
				Provider:   providerName,
				Code:       "empty_audio",
				Message:    "tts returned no audio",
				Retryable:  true,
				StatusCode: resp.StatusCode,
			}
		}
		return body, nil
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = fmt.Sprintf("elevenlabs tts returned status %d", resp.StatusCode)
	}
	return nil, mapProviderError(resp.StatusCode, message)
}

func mapProviderError(statusCode int, message string) error {
	pe := &domain.ProviderError{
		Provider:   providerName,
		Code:       "failed",
		Message:    message,
		StatusCode: statusCode,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		pe.Code = "auth"
		pe.Cause = domain.ErrMisconfigured
	case statusCode == http.StatusTooManyRequests:
		pe.Code = "rate_limited"
		pe.Retryable = true
	case statusCode >= http.StatusInternalServerError:
		pe.Retryable = true
	}

	return pe
}
