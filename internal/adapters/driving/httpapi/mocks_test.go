package httpapi

import (
	"context"
	"sync"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	mu    sync.Mutex
	reply *domain.ChatReply
	err   error
	got   []domain.ChatRequest
}

func (m *mockChatService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, req)
	return m.reply, m.err
}

func (m *mockChatService) last() domain.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.got[len(m.got)-1]
}

// mockVoiceService is a mock implementation of driving.VoiceService.
type mockVoiceService struct {
	available bool
	usage     domain.VoiceUsage
	usageErr  error
}

func (m *mockVoiceService) Available() bool { return m.available }

func (m *mockVoiceService) Speak(_ context.Context, _ string) (*domain.SpeechResult, error) {
	return &domain.SpeechResult{Status: domain.VoiceGenerated}, nil
}

func (m *mockVoiceService) Usage(_ context.Context) (domain.VoiceUsage, error) {
	return m.usage, m.usageErr
}

func (m *mockVoiceService) ResetUsage(_ context.Context) error { return nil }

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	docs     map[string]domain.Document
	list     []domain.DocumentInfo
	resident []domain.DocumentInfo
	report   domain.LoadReport
}

func (m *mockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	doc, ok := m.docs[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockDocumentService) List(_ context.Context) []domain.DocumentInfo {
	return m.list
}

func (m *mockDocumentService) ListPartition(_ context.Context, p domain.Partition) []domain.DocumentInfo {
	if p == domain.PartitionResident {
		return m.resident
	}
	return m.list
}

func (m *mockDocumentService) Report() domain.LoadReport {
	return m.report
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results    []domain.SearchResult
	err        error
	query      string
	maxResults int
}

func (m *mockSearchService) Search(_ context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	m.query = query
	m.maxResults = maxResults
	return m.results, m.err
}
