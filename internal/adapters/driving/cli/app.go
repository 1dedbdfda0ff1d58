package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/cache"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/config/file"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/documents/filesystem"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/llm/anthropic"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/storage/memory"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/storage/sqlite"
	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/tts/elevenlabs"
	"github.com/lillianfidler/churchill-falls-assistant/internal/config"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/services"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// capability selects how much of the application a command wires.
type capability int

const (
	// withDocuments loads the documents, search and voice budget.
	withDocuments capability = iota

	// withChat also connects the LLM and builds the chat service.
	withChat
)

// app holds the wired services for one command invocation.
type app struct {
	cfg       *config.Config
	documents driving.DocumentService
	search    driving.SearchService
	tools     driving.ToolGateway
	voice     driving.VoiceService

	// chat is nil unless withChat was requested.
	chat driving.ChatService

	// history is nil when voice usage is kept in memory.
	history func(ctx context.Context, limit int) ([]sqlite.MonthUsage, error)

	closers []func() error
}

// Close releases stores opened during wiring.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newApp is replaced in tests.
var newApp = buildApp

// buildApp wires adapters and services from the configuration.
func buildApp(ctx context.Context, cfg *config.Config, needs capability) (*app, error) {
	a := &app{cfg: cfg}

	source := filesystem.NewSource(cfg.Documents.Dir)
	store, _, err := services.LoadDocuments(ctx, source, cfg.Documents.Catalog())
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	gateway, err := services.NewToolGateway(store)
	if err != nil {
		return nil, fmt.Errorf("building tool gateway: %w", err)
	}
	a.documents = store
	a.tools = gateway
	a.search = services.NewSearchEngine(store.Partition(domain.PartitionSearchable))

	usage, err := a.usageTracker(cfg.Voice)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var tts driven.SpeechSynthesizer
	if cfg.Voice.Enabled() {
		synth, err := elevenlabs.NewSynthesizer(elevenlabs.Config{
			APIKey:          cfg.Voice.APIKey,
			VoiceID:         cfg.Voice.VoiceID,
			BaseURL:         cfg.Voice.BaseURL,
			ModelID:         cfg.Voice.ModelID,
			Stability:       cfg.Voice.Stability,
			SimilarityBoost: cfg.Voice.SimilarityBoost,
			Timeout:         cfg.Voice.Timeout,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		tts = synth
	} else {
		logger.Info("Voice not configured, answers will be text only")
	}
	voice := services.NewVoiceService(tts, usage, cfg.Voice.MonthlyBudget, cfg.Voice.MaxChars)
	a.voice = voice

	if needs < withChat {
		return a, nil
	}

	llm, err := anthropic.NewLLMService(anthropic.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%w (set %s)", err, config.EnvAnthropicKey)
	}
	a.closers = append(a.closers, llm.Close)

	prompts := services.DefaultPrompts()
	if cfg.LLM.PromptDir != "" {
		ps, err := file.NewPromptStore(cfg.LLM.PromptDir, prompts.ByName())
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("opening prompts: %w", err)
		}
		prompts = services.LoadPrompts(ps)
	}

	var responses driven.ResponseCache
	if cfg.Cache.Enabled {
		responses = cache.New(cfg.Cache.TTL, cfg.Cache.Cleanup)
	}

	a.chat = services.NewChatService(store, llm, gateway, voice, responses, services.ChatConfig{
		Prompts:        prompts,
		FallbackMarker: cfg.LLM.FallbackMarker,
		Modes:          services.DefaultModes(cfg.LLM.MaxToolRounds),
		DefaultMode:    domain.ChatMode(cfg.LLM.DefaultMode),
	})
	logger.Debug("Chat ready with model %s, %d tools", llm.ModelName(), len(gateway.Specs()))
	return a, nil
}

// usageTracker opens the persistent voice budget, or an in-memory one when
// no database is configured.
func (a *app) usageTracker(cfg config.VoiceConfig) (driven.UsageTracker, error) {
	if cfg.UsageDB == "" {
		logger.Debug("Voice usage kept in memory")
		return memory.NewUsageTracker(nil), nil
	}
	db, err := sqlite.NewStore(cfg.UsageDB)
	if err != nil {
		return nil, fmt.Errorf("opening usage database: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	usage := db.UsageStore(nil)
	a.history = usage.History
	logger.Debug("Voice usage stored in %s", db.Path())
	return usage, nil
}
