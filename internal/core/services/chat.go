package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
	"github.com/lillianfidler/churchill-falls-assistant/internal/metrics"
	"github.com/lillianfidler/churchill-falls-assistant/internal/shaper"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatConfig configures the chat service.
type ChatConfig struct {
	Prompts        Prompts
	FallbackMarker string
	Modes          map[domain.ChatMode]domain.ModeConfig
	DefaultMode    domain.ChatMode
}

// DefaultChatConfig returns the built-in modes, prompts and fallback marker.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		Prompts:        DefaultPrompts(),
		FallbackMarker: DefaultFallbackMarker,
		Modes:          DefaultModes(DefaultMaxToolRounds),
		DefaultMode:    domain.ModeText,
	}
}

// ChatService answers user turns through one configuration-driven code path.
type ChatService struct {
	residentContext string
	orchestrator    *Orchestrator
	tools           []domain.ToolSpec
	voice           driving.VoiceService
	cache           driven.ResponseCache
	cfg             ChatConfig
}

// NewChatService creates a chat service.
// voice and cache are optional (can be nil).
func NewChatService(
	store *DocumentStore,
	llm driven.LLMService,
	gateway driving.ToolGateway,
	voice driving.VoiceService,
	cache driven.ResponseCache,
	cfg ChatConfig,
) *ChatService {
	if cfg.Modes == nil {
		cfg.Modes = DefaultModes(DefaultMaxToolRounds)
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = domain.ModeText
	}
	s := &ChatService{
		residentContext: store.ResidentContext(),
		orchestrator:    NewOrchestrator(llm, gateway),
		voice:           voice,
		cache:           cache,
		cfg:             cfg,
	}
	if gateway != nil {
		s.tools = gateway.Specs()
	}
	return s
}

// Chat answers one user turn. When a resident-only mode replies with the
// fallback marker the turn is re-run once in the mode's escalation target.
func (s *ChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	start := time.Now()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	modeName := req.Mode
	if modeName == "" {
		modeName = s.cfg.DefaultMode
	}
	mode, ok := s.cfg.Modes[modeName]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, modeName)
	}

	history := domain.FilterHistory(req.History)
	logger.Section("Chat Turn")
	logger.Debug("Mode %s, %d history messages (%d supplied)", mode.Mode, len(history), len(req.History))

	var key string
	if s.cache != nil && len(history) == 0 {
		key = CacheKey(mode.Mode, message)
		if cached, ok := s.cache.Get(key); ok {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			metrics.ChatTurnsTotal.WithLabelValues(string(mode.Mode), "cached").Inc()
			reply := *cached
			reply.Cached = true
			reply.Duration = time.Since(start)
			logger.Info("Chat turn mode=%s served from cache in %s", reply.Mode, reply.Duration)
			return &reply, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	messages := append(history, domain.TextMessage(domain.RoleUser, message))

	outcome, err := s.run(ctx, mode, messages)
	if err != nil {
		metrics.ChatTurnsTotal.WithLabelValues(string(mode.Mode), "error").Inc()
		return nil, err
	}

	reply := &domain.ChatReply{Mode: mode.Mode}
	if s.shouldEscalate(mode, outcome.Text) {
		target := s.cfg.Modes[mode.EscalateTo]
		logger.Info("Escalating %s turn to %s", mode.Mode, target.Mode)
		metrics.ChatEscalationsTotal.WithLabelValues(string(mode.Mode), string(target.Mode)).Inc()
		outcome, err = s.run(ctx, target, messages)
		if err != nil {
			metrics.ChatTurnsTotal.WithLabelValues(string(target.Mode), "error").Inc()
			return nil, err
		}
		mode = target
		reply.Mode = target.Mode
		reply.Escalated = true
	}

	shaped := shaper.Shape(outcome.Text, mode)
	reply.Text = shaped.Display
	reply.Rounds = outcome.Rounds
	reply.ToolCalls = outcome.ToolCalls
	reply.CappedOut = outcome.CappedOut

	if mode.Voice {
		if s.voice == nil {
			reply.Speech = &domain.SpeechResult{Status: domain.VoiceUnavailable}
		} else {
			speech, err := s.voice.Speak(ctx, shaped.Speech)
			if err != nil {
				metrics.ChatTurnsTotal.WithLabelValues(string(mode.Mode), "error").Inc()
				return nil, err
			}
			reply.Speech = speech
		}
	}

	reply.Duration = time.Since(start)
	turnStatus := "ok"
	if reply.CappedOut {
		turnStatus = "capped"
	}
	metrics.ChatTurnsTotal.WithLabelValues(string(reply.Mode), turnStatus).Inc()
	metrics.ChatTurnDuration.WithLabelValues(string(reply.Mode)).Observe(reply.Duration.Seconds())

	if key != "" && cacheable(reply) {
		stored := *reply
		s.cache.Set(key, &stored)
	}

	voiceStatus := domain.VoiceNotRequested
	if reply.Speech != nil {
		voiceStatus = reply.Speech.Status
	}
	logger.Info("Chat turn mode=%s escalated=%t rounds=%d tool_calls=%d voice=%s in %s",
		reply.Mode, reply.Escalated, reply.Rounds, reply.ToolCalls, voiceStatus, reply.Duration.Round(time.Millisecond))

	return reply, nil
}

func (s *ChatService) run(ctx context.Context, mode domain.ModeConfig, messages []domain.Message) (*TurnOutcome, error) {
	in := TurnInput{
		System:        buildSystem(s.cfg.Prompts, mode, s.residentContext, s.cfg.FallbackMarker),
		Messages:      messages,
		MaxTokens:     mode.MaxTokens,
		MaxToolRounds: mode.MaxToolRounds,
	}
	if mode.ToolsEnabled {
		in.Tools = s.tools
	}
	return s.orchestrator.Run(ctx, in)
}

func (s *ChatService) shouldEscalate(mode domain.ModeConfig, text string) bool {
	if mode.EscalateTo == "" || s.cfg.FallbackMarker == "" {
		return false
	}
	if _, ok := s.cfg.Modes[mode.EscalateTo]; !ok {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.cfg.FallbackMarker))
}

// cacheable excludes replies that a later identical question could improve.
func cacheable(r *domain.ChatReply) bool {
	if r.CappedOut {
		return false
	}
	return r.Speech == nil || r.Speech.Status == domain.VoiceGenerated
}

// CacheKey normalises a first-turn question for the response cache.
func CacheKey(mode domain.ChatMode, message string) string {
	return string(mode) + ":" + strings.Join(strings.Fields(strings.ToLower(message)), " ")
}
