package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

type mapPromptStore map[string]string

func (m mapPromptStore) Load(name string) (string, error) {
	if text, ok := m[name]; ok {
		return text, nil
	}
	return "", errors.New("no such prompt")
}

func TestLoadPrompts(t *testing.T) {
	defaults := DefaultPrompts()

	t.Run("nil store keeps defaults", func(t *testing.T) {
		assert.Equal(t, defaults, LoadPrompts(nil))
	})

	t.Run("overrides and fallbacks", func(t *testing.T) {
		p := LoadPrompts(mapPromptStore{
			driven.PromptSystem: "  Answer about the Upper Churchill.  ",
			driven.PromptVoice:  "   ",
		})
		assert.Equal(t, "Answer about the Upper Churchill.", p.System)
		assert.Equal(t, defaults.Tools, p.Tools)
		assert.Equal(t, defaults.Voice, p.Voice)
	})
}

func TestPrompts_ByName(t *testing.T) {
	p := Prompts{System: "s", Tools: "t", Voice: "v"}
	assert.Equal(t, map[string]string{"system": "s", "tools": "t", "voice": "v"}, p.ByName())
}

func TestBuildSystem(t *testing.T) {
	p := Prompts{System: "SYS", Tools: "TOOLS", Voice: "VOICE"}
	modes := DefaultModes(DefaultMaxToolRounds)

	tests := []struct {
		mode       domain.ChatMode
		wantTools  bool
		wantVoice  bool
		wantMarker bool
	}{
		{domain.ModeVoice, false, true, true},
		{domain.ModeVoiceResearch, true, true, false},
		{domain.ModeText, false, false, true},
		{domain.ModeResearch, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := buildSystem(p, modes[tt.mode], "\n\n=== a.txt ===\nfox", "STAND BY")
			assert.True(t, strings.HasPrefix(got, "SYS"))
			assert.Equal(t, tt.wantTools, strings.Contains(got, "TOOLS"))
			assert.Equal(t, tt.wantVoice, strings.Contains(got, "VOICE"))
			assert.Equal(t, tt.wantMarker, strings.Contains(got, "STAND BY"))
			assert.True(t, strings.HasSuffix(got, "REFERENCE DOCUMENTS:\n\n=== a.txt ===\nfox"))
		})
	}
}
