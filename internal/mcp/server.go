// Package mcp exposes FocusFlow to LLM assistants over the Model Context
// Protocol: task management tools, focus checks and productivity stats.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sadopc/focusflow/internal/monitor"
	"github.com/sadopc/focusflow/internal/store"
)

// Deps holds shared dependencies injected into MCP handlers.
type Deps struct {
	Store   store.Store
	Monitor *monitor.Monitor
	Version string
}

// NewServer creates and configures the MCP server with all tools and
// resources registered.
func NewServer(deps *Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"FocusFlow",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
	)

	registerTools(s, deps)
	registerResources(s, deps)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func ServeStdio(deps *Deps) error {
	return server.ServeStdio(NewServer(deps))
}
