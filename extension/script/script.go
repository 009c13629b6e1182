// Package script provides the script file extension.
// Registers commands: script new, script ls, script cat, script rm,
// script diff.
// Registers MCP tools: create_script_file, list_script_files,
// get_script_content, delete_script_file.
//
// Script files live on local disk, so nothing here needs a Notion token.
package script

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/script"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the script extension.
type Extension struct {
	store *script.Store
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Offline       = (*Extension)(nil)
)

// Name returns "script".
func (e *Extension) Name() string { return "script" }

// Init takes the shared script store.
func (e *Extension) Init(ctx extension.Context) error {
	e.store = ctx.Scripts()
	return nil
}

// OfflineCommands returns the script command group.
func (e *Extension) OfflineCommands() []string {
	return []string{"script"}
}

// Commands returns the script command group.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "script",
		Short: "Manage short-video script files",
		Long: `Create, list, read, compare and delete script files.

Files are stored in scripts.dir. See 'notionmcp guide scripts'.`,
	}
	c.AddCommand(
		e.newNewCmd(),
		e.newLsCmd(),
		e.newCatCmd(),
		e.newRmCmd(),
		e.newDiffCmd(),
	)
	return []*cobra.Command{c}
}
