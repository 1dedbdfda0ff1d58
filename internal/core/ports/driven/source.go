package driven

import "context"

// DocumentSource reads catalog documents by name.
// The filesystem implementation resolves names against a base directory.
type DocumentSource interface {
	// ReadDocument returns the raw content of the named document.
	// A missing document returns an error wrapping fs.ErrNotExist.
	ReadDocument(ctx context.Context, name string) ([]byte, error)

	// Location returns a human-readable description of where documents
	// are read from.
	Location() string
}
