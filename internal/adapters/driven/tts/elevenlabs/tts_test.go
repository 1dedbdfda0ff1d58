package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

func newTestSynthesizer(t *testing.T, handler http.HandlerFunc) *Synthesizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewSynthesizer(Config{APIKey: "xi-key", VoiceID: "voice 1", BaseURL: srv.URL})
	require.NoError(t, err)
	return s
}

func TestNewSynthesizer_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no key", Config{VoiceID: "v"}},
		{"no voice", Config{APIKey: "k"}},
		{"blank", Config{APIKey: "  ", VoiceID: " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSynthesizer(tt.cfg)
			assert.ErrorIs(t, err, domain.ErrVoiceUnavailable)
		})
	}
}

func TestNewSynthesizer_Defaults(t *testing.T) {
	s, err := NewSynthesizer(Config{APIKey: "k", VoiceID: "v"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModelID, s.modelID)
	assert.Equal(t, DefaultStability, s.settings.Stability)
	assert.Equal(t, DefaultSimilarityBoost, s.settings.SimilarityBoost)
	assert.Equal(t, "v", s.VoiceID())
}

func TestSynthesize_Success(t *testing.T) {
	var got synthesizeRequest
	s := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/voice 1", r.URL.Path)
		assert.Equal(t, "xi-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-mp3-bytes"))
	})

	audio, err := s.Synthesize(context.Background(), "  Churchill Falls produces 5,428 megawatts.  ")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-mp3-bytes"), audio)

	assert.Equal(t, "Churchill Falls produces 5,428 megawatts.", got.Text)
	assert.Equal(t, DefaultModelID, got.ModelID)
	assert.Equal(t, 0.5, got.VoiceSettings.Stability)
	assert.Equal(t, 0.75, got.VoiceSettings.SimilarityBoost)
	assert.True(t, got.VoiceSettings.UseSpeakerBoost)
}

func TestSynthesize_EmptyText(t *testing.T) {
	called := false
	s := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := s.Synthesize(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, called)
}

func TestSynthesize_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantCode  string
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"invalid api key"}`, "auth", false},
		{"forbidden", http.StatusForbidden, "", "auth", false},
		{"rate limited", http.StatusTooManyRequests, "too many", "rate_limited", true},
		{"server error", http.StatusServiceUnavailable, "down", "failed", true},
		{"bad request", http.StatusUnprocessableEntity, "bad voice settings", "failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := s.Synthesize(context.Background(), "hello")
			var pe *domain.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "elevenlabs", pe.Provider)
			assert.Equal(t, tt.wantCode, pe.Code)
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, tt.retryable, domain.IsRetryable(err))
			assert.NotEmpty(t, pe.Message)
		})
	}
}

func TestSynthesize_EmptyAudio(t *testing.T) {
	s := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := s.Synthesize(context.Background(), "hello")
	var pe *domain.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "empty_audio", pe.Code)
}

func TestSynthesize_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	s, err := NewSynthesizer(Config{APIKey: "k", VoiceID: "v", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, domain.IsRetryable(err))
}
