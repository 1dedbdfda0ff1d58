package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

func TestVoiceService_QuotaExceeded(t *testing.T) {
	tts := &mockTTS{}
	usage := &mockUsage{used: 99900}
	svc := NewVoiceService(tts, usage, 100000, 10000)

	result, err := svc.Speak(context.Background(), strings.Repeat("a", 500))
	require.NoError(t, err)

	assert.Equal(t, domain.VoiceQuotaExceeded, result.Status)
	assert.Nil(t, result.Audio)
	assert.Equal(t, 500, result.Characters)
	assert.Empty(t, tts.texts)
	assert.Equal(t, 99900, usage.used)
}

func TestVoiceService_TruncatesToCeilingBeforeCall(t *testing.T) {
	tts := &mockTTS{}
	svc := NewVoiceService(tts, &mockUsage{}, 100000, 10000)
	text := strings.Repeat("The plant produces power. ", 462)[:12000]
	require.Equal(t, 12000, len(text))

	result, err := svc.Speak(context.Background(), text)
	require.NoError(t, err)

	require.Len(t, tts.texts, 1)
	sent := tts.texts[0]
	assert.LessOrEqual(t, utf8.RuneCountInString(sent), 10000)
	assert.True(t, strings.HasSuffix(sent, "."))
	assert.Equal(t, utf8.RuneCountInString(sent), result.Characters)
}

func TestVoiceService_RecordsUsageAfterSuccess(t *testing.T) {
	tts := &mockTTS{}
	usage := &mockUsage{used: 100}
	svc := NewVoiceService(tts, usage, 1000, 500)

	result, err := svc.Speak(context.Background(), "  Hello there.  ")
	require.NoError(t, err)

	assert.Equal(t, domain.VoiceGenerated, result.Status)
	assert.Equal(t, []byte("ID3-audio"), result.Audio)
	assert.Equal(t, []string{"Hello there."}, tts.texts)
	assert.Equal(t, 112, usage.used)
}

func TestVoiceService_ExactBudgetAllowed(t *testing.T) {
	usage := &mockUsage{used: 990}
	svc := NewVoiceService(&mockTTS{}, usage, 1000, 500)

	result, err := svc.Speak(context.Background(), "0123456789")
	require.NoError(t, err)

	assert.Equal(t, domain.VoiceGenerated, result.Status)
	assert.Equal(t, 1000, usage.used)
}

func TestVoiceService_Unavailable(t *testing.T) {
	svc := NewVoiceService(nil, &mockUsage{}, 0, 0)

	result, err := svc.Speak(context.Background(), "Hello")
	require.NoError(t, err)

	assert.False(t, svc.Available())
	assert.Equal(t, domain.VoiceUnavailable, result.Status)
}

func TestVoiceService_EmptyText(t *testing.T) {
	tts := &mockTTS{}
	svc := NewVoiceService(tts, &mockUsage{}, 0, 0)

	result, err := svc.Speak(context.Background(), "   ")
	require.NoError(t, err)

	assert.Equal(t, domain.VoiceSkippedEmpty, result.Status)
	assert.Empty(t, tts.texts)
}

func TestVoiceService_TTSFailureIsTerminal(t *testing.T) {
	tts := &mockTTS{err: &domain.ProviderError{Provider: "elevenlabs", Code: "rate_limit", Retryable: true}}
	usage := &mockUsage{}
	svc := NewVoiceService(tts, usage, 0, 0)

	result, err := svc.Speak(context.Background(), "Hello")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, domain.IsRetryable(err))
	assert.Zero(t, usage.used)
}

func TestVoiceService_UsageReadFailure(t *testing.T) {
	svc := NewVoiceService(&mockTTS{}, &mockUsage{getErr: errors.New("database is locked")}, 0, 0)

	_, err := svc.Speak(context.Background(), "Hello")

	assert.ErrorContains(t, err, "database is locked")
}

func TestVoiceService_UsageAndReset(t *testing.T) {
	usage := &mockUsage{used: 25000}
	svc := NewVoiceService(&mockTTS{}, usage, 0, 0)

	snapshot, err := svc.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.VoiceUsage{Used: 25000, Limit: DefaultMonthlyVoiceBudget}, snapshot)

	require.NoError(t, svc.ResetUsage(context.Background()))
	snapshot, err = svc.Usage(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snapshot.Used)
}
