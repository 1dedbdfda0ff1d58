package driving

import (
	"context"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// SearchService provides keyword search over the searchable partition.
type SearchService interface {
	// Search ranks searchable documents against the query.
	// An empty result is a valid "no relevant documents" answer.
	Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error)
}
