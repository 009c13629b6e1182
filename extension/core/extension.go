// Package core provides the core extension for notionmcp.
// It registers commands: serve, config, guide, audit, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Offline   = (*Extension)(nil)
)

// Name returns "core" - this extension provides the process-level commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newServeCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newAuditCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - core commands have no MCP tool equivalents.
// MCP tools are provided by the page, database and script extensions.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// OfflineCommands returns the core commands that never call Notion. serve
// is not among them: a server without a token refuses to start.
func (e *Extension) OfflineCommands() []string {
	return []string{"config", "guide", "audit", "version"}
}
