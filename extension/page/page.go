// Package page provides the page extension: search and the page tools.
// Registers commands: search, page, content, create, update, diff.
// Registers MCP tools: search_notion, get_page, get_page_content,
// create_page, update_page.
package page

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the page extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "page".
func (e *Extension) Name() string { return "page" }

// Init takes the shared tool service. It is nil without a token; the root
// command's token check stops page commands before they reach it.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Tools()
	return nil
}

// Commands returns the page commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newPageCmd(),
		e.newContentCmd(),
		e.newCreateCmd(),
		e.newUpdateCmd(),
		e.newDiffCmd(),
	}
}

// readContent resolves markdown from --content or --file. "-" reads stdin.
// The bool reports whether either flag was given.
func readContent(c *cobra.Command) (string, bool, error) {
	content, _ := c.Flags().GetString(extension.FlagContent)
	file, _ := c.Flags().GetString(extension.FlagFile)

	switch {
	case c.Flags().Changed(extension.FlagContent) && file != "":
		return "", false, fmt.Errorf("--%s and --%s cannot be combined", extension.FlagContent, extension.FlagFile)
	case file == "-":
		b, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return "", false, fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), true, nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("reading %s: %w", file, err)
		}
		return string(b), true, nil
	case c.Flags().Changed(extension.FlagContent):
		return content, true, nil
	}
	return "", false, nil
}

func addContentFlags(c *cobra.Command) {
	c.Flags().StringP(extension.FlagContent, "c", "", "Markdown content")
	c.Flags().StringP(extension.FlagFile, "f", "", "Read markdown from a file (- for stdin)")
}
