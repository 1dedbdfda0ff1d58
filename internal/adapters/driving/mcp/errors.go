// Package mcp exposes the document retrieval tools over the Model Context
// Protocol so external MCP clients can search and read the documents.
package mcp

import "errors"

// ErrMissingToolGateway is returned when the tool gateway is not provided.
var ErrMissingToolGateway = errors.New("mcp: tool gateway is required")
