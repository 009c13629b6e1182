// diff.go implements the "notionmcp diff" command, comparing a page's
// markdown rendering with a local file before it is pushed.

package page

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/notionmcp/cmd"
	"github.com/jpl-au/notionmcp/internal/diff"
	"github.com/jpl-au/notionmcp/internal/progress"
	"github.com/jpl-au/notionmcp/internal/service"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <page-id> <file.md>",
		Short: "Compare a page with a local markdown file",
		Long: `Show the line differences between a page, rendered as it is by
'notionmcp content --raw', and a local markdown file.

  notionmcp content <page> --raw > page.md
  $EDITOR page.md
  notionmcp diff <page> page.md`,
		Args: cobra.ExactArgs(2),
		RunE: e.runDiff,
	}
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	pageID, file := args[0], args[1]

	local, err := os.ReadFile(file)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reading %s: %w", file, err))
	}

	sp := progress.NewSpinner("Fetching page")
	sp.Start()
	title, body, err := e.svc.Markdown(c.Context(), pageID)
	sp.Stop()
	if err != nil {
		return cmd.PrintResult(c, service.Failure(service.OpPageContent, err))
	}

	r := diff.Compute("# "+title+"\n\n"+body, string(local), "notion: "+title, file)
	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	fmt.Fprint(cmd.Out(), r.Format(term.IsTerminal(int(os.Stdout.Fd()))))
	return nil
}
