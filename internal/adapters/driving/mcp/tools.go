package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
)

// SearchDocumentsInput is the input schema for the search_documents tool.
type SearchDocumentsInput struct {
	Query      string `json:"query" jsonschema:"search keywords; words of two characters or fewer are ignored"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of documents to return (default 5, at most 20)"`
}

// SearchDocumentsOutput is the output schema for the search_documents tool.
type SearchDocumentsOutput struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	Filename string `json:"filename" jsonschema:"exact filename as returned by search_documents or list_documents"`
}

// ListDocumentsInput is the (empty) input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []domain.DocumentInfo `json:"documents"`
	Count     int                   `json:"count"`
}

// registerTools registers the retrieval tools with the MCP server, reusing
// the gateway's tool descriptions.
func (s *Server) registerTools() {
	descriptions := make(map[string]string)
	for _, spec := range s.ports.Tools.Specs() {
		descriptions[spec.Name] = spec.Description
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        driving.ToolSearchDocuments,
		Description: descriptions[driving.ToolSearchDocuments],
	}, s.handleSearchDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        driving.ToolGetDocument,
		Description: descriptions[driving.ToolGetDocument],
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        driving.ToolListDocuments,
		Description: descriptions[driving.ToolListDocuments],
	}, s.handleListDocuments)
}

// handleSearchDocuments handles the search_documents tool invocation.
func (s *Server) handleSearchDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocumentsInput,
) (*mcp.CallToolResult, SearchDocumentsOutput, error) {
	if input.Query == "" {
		return nil, SearchDocumentsOutput{}, &domain.ToolError{
			Tool:    driving.ToolSearchDocuments,
			Kind:    domain.ToolErrorInvalidInput,
			Message: "query is required",
		}
	}
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}

	results, err := s.ports.Tools.SearchDocuments(ctx, input.Query, maxResults)
	if err != nil {
		return nil, SearchDocumentsOutput{}, err
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	return nil, SearchDocumentsOutput{Results: results, Count: len(results)}, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, driving.DocumentContent, error) {
	if input.Filename == "" {
		return nil, driving.DocumentContent{}, &domain.ToolError{
			Tool:    driving.ToolGetDocument,
			Kind:    domain.ToolErrorInvalidInput,
			Message: "filename is required",
		}
	}

	doc, err := s.ports.Tools.GetDocument(ctx, input.Filename)
	if err != nil {
		return nil, driving.DocumentContent{}, err
	}
	return nil, *doc, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs := s.ports.Tools.ListDocuments(ctx)
	if docs == nil {
		docs = []domain.DocumentInfo{}
	}
	return nil, ListDocumentsOutput{Documents: docs, Count: len(docs)}, nil
}
