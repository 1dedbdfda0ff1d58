package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
	"github.com/lillianfidler/churchill-falls-assistant/internal/metrics"
)

// DefaultMaxToolRounds caps the tool rounds of one user turn.
const DefaultMaxToolRounds = 5

// UnavailableAnswer is returned when a turn ends without any model text.
const UnavailableAnswer = "I wasn't able to put together an answer to that question. " +
	"Please try rephrasing it or asking something more specific."

// maxParallelTools bounds concurrent tool executions within one round.
const maxParallelTools = 4

// ToolCaller executes a single tool call.
type ToolCaller interface {
	Call(ctx context.Context, call domain.ToolCall) domain.ToolResult
}

// turnState is a state of the per-turn orchestration machine.
type turnState int

const (
	stateDrafting turnState = iota
	stateToolPending
	stateComplete
)

func (s turnState) String() string {
	switch s {
	case stateDrafting:
		return "drafting"
	case stateToolPending:
		return "tool_pending"
	case stateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// TurnInput is everything the orchestrator needs for one user turn.
type TurnInput struct {
	System   string
	Messages []domain.Message

	// Tools are advertised to the model; empty disables tool use.
	Tools []domain.ToolSpec

	MaxTokens     int
	MaxToolRounds int
}

// TurnOutcome is the unshaped result of a user turn.
type TurnOutcome struct {
	Text      string
	Rounds    int
	ToolCalls int
	CappedOut bool

	// Messages is the full conversation including tool rounds.
	Messages []domain.Message
}

// Orchestrator drives a user turn between the LLM and the tools.
type Orchestrator struct {
	llm   driven.LLMService
	tools ToolCaller
}

// NewOrchestrator creates an orchestrator. tools may be nil when no mode
// enables tool use.
func NewOrchestrator(llm driven.LLMService, tools ToolCaller) *Orchestrator {
	return &Orchestrator{llm: llm, tools: tools}
}

// Run executes the turn: Drafting -> ToolPending -> Drafting ... -> Complete.
// The loop completes when the model stops requesting tools or the round cap
// is reached; in the latter case the last model text is returned. A failed
// LLM call aborts the turn with domain.ErrLLMUnavailable.
func (o *Orchestrator) Run(ctx context.Context, in TurnInput) (*TurnOutcome, error) {
	maxRounds := in.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxToolRounds
	}
	toolsEnabled := len(in.Tools) > 0 && o.tools != nil

	messages := make([]domain.Message, len(in.Messages), len(in.Messages)+2*maxRounds+1)
	copy(messages, in.Messages)

	out := &TurnOutcome{}
	var pending []domain.ToolCall
	state := stateDrafting

	for state != stateComplete {
		logger.Debug("Turn state %s (round %d/%d)", state, out.Rounds, maxRounds)

		switch state {
		case stateDrafting:
			req := driven.LLMRequest{
				System:    in.System,
				Messages:  messages,
				MaxTokens: in.MaxTokens,
			}
			if toolsEnabled {
				req.Tools = in.Tools
			}

			resp, err := o.chat(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
			}

			messages = append(messages, resp.Message)
			if text := strings.TrimSpace(resp.Message.Text()); text != "" {
				out.Text = text
			}

			pending = resp.Message.ToolCalls()
			switch {
			case len(pending) == 0 || !toolsEnabled:
				state = stateComplete
			case out.Rounds >= maxRounds:
				logger.Warn("Tool round cap (%d) reached, returning best available answer", maxRounds)
				out.CappedOut = true
				state = stateComplete
			default:
				state = stateToolPending
			}

		case stateToolPending:
			results := o.executeRound(ctx, pending)
			blocks := make([]domain.ContentBlock, len(results))
			for i := range results {
				blocks[i] = domain.ContentBlock{Type: domain.BlockToolResult, ToolResult: &results[i]}
			}
			messages = append(messages, domain.Message{Role: domain.RoleUser, Blocks: blocks})
			out.Rounds++
			out.ToolCalls += len(pending)
			pending = nil
			state = stateDrafting
		}
	}

	if out.Text == "" {
		out.Text = UnavailableAnswer
	}
	out.Messages = messages
	return out, nil
}

// chat calls the model and records call metrics.
func (o *Orchestrator) chat(ctx context.Context, req driven.LLMRequest) (*driven.LLMResponse, error) {
	model := o.llm.ModelName()
	start := time.Now()
	resp, err := o.llm.Chat(ctx, req)
	metrics.LLMCallDuration.WithLabelValues(model).Observe(metrics.Since(start))
	metrics.LLMCallTotal.WithLabelValues(model, metrics.Status(err)).Inc()
	if err != nil {
		return nil, err
	}
	metrics.LLMTokensUsed.WithLabelValues(model, "input").Add(float64(resp.InputTokens))
	metrics.LLMTokensUsed.WithLabelValues(model, "output").Add(float64(resp.OutputTokens))
	return resp, nil
}

// executeRound runs the calls of one round concurrently and returns the
// results in request order.
func (o *Orchestrator) executeRound(ctx context.Context, calls []domain.ToolCall) []domain.ToolResult {
	results := make([]domain.ToolResult, len(calls))

	var g errgroup.Group
	g.SetLimit(maxParallelTools)
	for i, call := range calls {
		g.Go(func() error {
			logger.Debug("Tool call %s %s", call.Name, string(call.Input))
			results[i] = o.tools.Call(ctx, call)
			status := "ok"
			if results[i].IsError {
				status = "error"
			}
			metrics.ToolCallsTotal.WithLabelValues(call.Name, status).Inc()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
