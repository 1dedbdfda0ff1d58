package mcp

import (
	"context"
	"fmt"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
)

// mockToolGateway is a mock implementation of driving.ToolGateway.
type mockToolGateway struct {
	results    []domain.SearchResult
	docs       map[string]string
	list       []domain.DocumentInfo
	err        error
	query      string
	maxResults int
}

func (m *mockToolGateway) Specs() []domain.ToolSpec {
	return []domain.ToolSpec{
		{Name: driving.ToolSearchDocuments, Description: "Search the supplementary documents by keyword."},
		{Name: driving.ToolGetDocument, Description: "Retrieve the full text of a supplementary document."},
		{Name: driving.ToolListDocuments, Description: "List all supplementary documents."},
	}
}

func (m *mockToolGateway) Call(_ context.Context, call domain.ToolCall) domain.ToolResult {
	return domain.ToolResult{CallID: call.ID}
}

func (m *mockToolGateway) SearchDocuments(_ context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	m.query = query
	m.maxResults = maxResults
	return m.results, m.err
}

func (m *mockToolGateway) GetDocument(_ context.Context, filename string) (*driving.DocumentContent, error) {
	if m.err != nil {
		return nil, m.err
	}
	content, ok := m.docs[filename]
	if !ok {
		return nil, &domain.ToolError{
			Tool:    driving.ToolGetDocument,
			Kind:    domain.ToolErrorNotFound,
			Message: fmt.Sprintf("document %q not found in supplementary documents", filename),
		}
	}
	return &driving.DocumentContent{Filename: filename, Content: content, SizeBytes: len(content)}, nil
}

func (m *mockToolGateway) ListDocuments(_ context.Context) []domain.DocumentInfo {
	return m.list
}
