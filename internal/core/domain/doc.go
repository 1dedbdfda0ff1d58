// Package domain defines the core business entities for the assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A text document loaded once at startup
//   - Catalog: The resident and searchable partitions of the document set
//   - SearchResult: A ranked keyword match with evidence snippets
//   - Message: A role-tagged conversation entry with content blocks
//   - Mode: A named configuration of one chat turn
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
