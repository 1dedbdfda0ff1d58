package driving

import (
	"context"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// Tool names exposed to the model and to MCP clients.
const (
	ToolSearchDocuments = "search_documents"
	ToolGetDocument     = "get_document"
	ToolListDocuments   = "list_documents"
)

// ToolGateway exposes retrieval as declared, schema-checked tools.
type ToolGateway interface {
	// Specs returns the declared tools in a stable order.
	Specs() []domain.ToolSpec

	// Call executes a raw tool call. Failures are reported in the result
	// with IsError set; Call never returns a Go error.
	Call(ctx context.Context, call domain.ToolCall) domain.ToolResult

	// SearchDocuments runs a keyword search over the searchable partition.
	SearchDocuments(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error)

	// GetDocument returns a searchable document.
	// Returns a *domain.ToolError of kind not_found naming the file.
	GetDocument(ctx context.Context, filename string) (*DocumentContent, error)

	// ListDocuments lists the searchable partition.
	ListDocuments(ctx context.Context) []domain.DocumentInfo
}

// DocumentContent is the get_document payload.
type DocumentContent struct {
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	SizeBytes int    `json:"size"`
}
