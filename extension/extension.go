// Package extension provides the plugin architecture for notionmcp.
// Extensions encapsulate related functionality (commands, MCP tools) and
// register at init time, enabling modular feature development without
// touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for notionmcp extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup once the Context exists.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Offline is an optional interface for extensions with commands that work
// without a Notion token. Commands returned by OfflineCommands() skip the
// token check in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (config, guide) used to set up the token
// 2. Local utilities (script files, audit log, version)
type Offline interface {
	OfflineCommands() []string
}
