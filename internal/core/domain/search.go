package domain

// DefaultMaxResults is the number of search results returned when the
// caller does not ask for a specific count.
const DefaultMaxResults = 5

// SearchResult is a single keyword search hit.
// It is computed per query and never persisted.
type SearchResult struct {
	// DocumentName is the matched document.
	DocumentName string `json:"filename"`

	// Score is the summed occurrence count of the query tokens.
	Score int `json:"score"`

	// Snippets holds up to three extracts around matching lines.
	Snippets []string `json:"snippets"`

	// SizeBytes is the size of the whole document.
	SizeBytes int `json:"size"`
}
