package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// mockSource serves documents from a map and counts reads.
type mockSource struct {
	mu    sync.Mutex
	docs  map[string]string
	errs  map[string]error
	reads map[string]int
}

func newMockSource(docs map[string]string) *mockSource {
	return &mockSource{docs: docs, errs: map[string]error{}, reads: map[string]int{}}
}

func (m *mockSource) ReadDocument(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[name]++
	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	content, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return []byte(content), nil
}

func (m *mockSource) Location() string { return "memory" }

// scriptedLLM replays responses in order and records every request.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []*driven.LLMResponse
	fn        func(req driven.LLMRequest) (*driven.LLMResponse, error)
	err       error
	requests  []driven.LLMRequest
}

func (m *scriptedLLM) Chat(_ context.Context, req driven.LLMRequest) (*driven.LLMResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.Messages = append([]domain.Message(nil), req.Messages...)
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.fn != nil {
		return m.fn(req)
	}
	if len(m.responses) == 0 {
		return textResponse(""), nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *scriptedLLM) ModelName() string            { return "scripted" }
func (m *scriptedLLM) Ping(_ context.Context) error { return nil }
func (m *scriptedLLM) Close() error                 { return nil }

func (m *scriptedLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func textResponse(text string) *driven.LLMResponse {
	return &driven.LLMResponse{
		Message:    domain.TextMessage(domain.RoleAssistant, text),
		StopReason: driven.StopEndTurn,
	}
}

// toolResponse builds a model turn with optional text and tool calls given
// as id, name, JSON input triples.
func toolResponse(text string, calls ...[3]string) *driven.LLMResponse {
	msg := domain.Message{Role: domain.RoleAssistant}
	if text != "" {
		msg.Blocks = append(msg.Blocks, domain.TextBlock(text))
	}
	for _, c := range calls {
		msg.Blocks = append(msg.Blocks, domain.ContentBlock{
			Type:     domain.BlockToolUse,
			ToolCall: &domain.ToolCall{ID: c[0], Name: c[1], Input: json.RawMessage(c[2])},
		})
	}
	return &driven.LLMResponse{Message: msg, StopReason: driven.StopToolUse}
}

// mockTTS records synthesized text.
type mockTTS struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (m *mockTTS) Synthesize(_ context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("ID3-audio"), nil
}

func (m *mockTTS) VoiceID() string { return "test-voice" }

// mockUsage is an in-memory usage tracker with injectable failures.
type mockUsage struct {
	mu     sync.Mutex
	used   int
	getErr error
}

func (m *mockUsage) Get(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used, m.getErr
}

func (m *mockUsage) Increment(_ context.Context, n int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used += n
	return m.used, nil
}

func (m *mockUsage) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used = 0
	return nil
}

// mapCache is a response cache without expiry.
type mapCache struct {
	mu sync.Mutex
	m  map[string]*domain.ChatReply
}

func newMapCache() *mapCache { return &mapCache{m: map[string]*domain.ChatReply{}} }

func (c *mapCache) Get(key string) (*domain.ChatReply, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[key]
	return r, ok
}

func (c *mapCache) Set(key string, reply *domain.ChatReply) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = reply
}

func (c *mapCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = map[string]*domain.ChatReply{}
}

func (c *mapCache) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// testCatalog is the two-document catalog used across the service tests.
var testCatalog = domain.Catalog{
	Resident:   []string{"a.txt"},
	Searchable: []string{"b.txt", "c.txt"},
}

var testDocs = map[string]string{
	"a.txt": "the quick brown fox",
	"b.txt": "slow turtle\nfox eats turtle\nend",
	"c.txt": "Hydro-Quebec pays a fixed price.\nThe price was set in 1969.\nPrice escalation is limited.",
}

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	store, _, err := LoadDocuments(context.Background(), newMockSource(testDocs), testCatalog)
	require.NoError(t, err)
	return store
}

func newTestGateway(t *testing.T) *ToolGateway {
	t.Helper()
	g, err := NewToolGateway(newTestStore(t))
	require.NoError(t, err)
	return g
}
