package driving

import (
	"context"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// DocumentService answers existence, content and listing queries against
// the loaded catalog.
type DocumentService interface {
	// Get retrieves a loaded document by name.
	// Returns domain.ErrNotFound if the document was not loaded.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// List returns every loaded document in load order.
	List(ctx context.Context) []domain.DocumentInfo

	// ListPartition returns the loaded members of a partition in catalog order.
	ListPartition(ctx context.Context, p domain.Partition) []domain.DocumentInfo

	// Report returns the report of the startup load.
	Report() domain.LoadReport
}
