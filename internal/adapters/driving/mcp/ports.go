package mcp

import (
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Tools executes the retrieval tools.
	Tools driving.ToolGateway
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Tools == nil {
		return ErrMissingToolGateway
	}
	return nil
}
