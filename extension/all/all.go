// Package all imports all built-in notionmcp extensions.
// Import this package to register all commands and MCP tools.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/notionmcp/extension/core"
	_ "github.com/jpl-au/notionmcp/extension/database"
	_ "github.com/jpl-au/notionmcp/extension/page"
	_ "github.com/jpl-au/notionmcp/extension/script"
)
