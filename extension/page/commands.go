// commands.go implements the page CLI commands. Each command is a thin
// wrapper over the matching tool: arguments map one to one and the tool's
// text result is printed.

package page

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/notionmcp/cmd"
	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/progress"
	"github.com/jpl-au/notionmcp/internal/service"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search pages and databases",
		Long: `Search pages and databases shared with the integration.

  notionmcp search roadmap
  notionmcp search "" --type database    # every database`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ft, _ := c.Flags().GetString(extension.FlagType)
			return cmd.PrintResult(c, e.svc.Search(c.Context(), service.SearchArgs{Query: args[0], FilterType: ft}))
		},
	}
	c.Flags().StringP(extension.FlagType, "t", "", "Only return objects of this type: page or database")
	_ = c.RegisterFlagCompletionFunc(extension.FlagType, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"page", "database"}, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

func (e *Extension) newPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page <page-id>",
		Short: "Show page metadata and properties",
		Long:  `Show a page's id, title, url, timestamps and raw properties. The id may be a notion.so URL.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.PrintResult(c, e.svc.Page(c.Context(), service.PageArgs{PageID: args[0]}))
		},
	}
}

func (e *Extension) newContentCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "content <page-id>",
		Short: "Show a page as markdown",
		Long: `Render a page and all nested blocks as markdown.

Terminal output is rendered with glamour; use --raw for plain markdown.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runContent,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runContent(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	sp := progress.NewSpinner("Fetching page")
	sp.Start()
	r := e.svc.PageContent(c.Context(), service.PageArgs{PageID: args[0]})
	sp.Stop()

	if !r.Failed() && !cmd.JSON() && !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(r.Text, "dark")
		if err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	return cmd.PrintResult(c, r)
}

func (e *Extension) newCreateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "create <parent-id> <title>",
		Short: "Create a page",
		Long: `Create a child page under a parent page, optionally with markdown content.

  notionmcp create <parent> "Meeting notes" --content "# Agenda"
  notionmcp create <parent> "Draft" --file draft.md
  cat draft.md | notionmcp create <parent> "Draft" --file -

See 'notionmcp guide markdown' for the supported subset.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			content, _, err := readContent(c)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return cmd.PrintResult(c, e.svc.CreatePage(c.Context(), service.CreatePageArgs{
				ParentID: args[0],
				Title:    args[1],
				Content:  content,
			}))
		},
	}
	addContentFlags(c)
	return c
}

func (e *Extension) newUpdateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update <page-id>",
		Short: "Retitle a page or append content",
		Long: `Update a page title and/or append markdown to the end of the page.
Existing content is never replaced.

  notionmcp update <page> --title "Final notes"
  notionmcp update <page> --content "- one more item"`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			content, hasContent, err := readContent(c)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			upd := service.UpdatePageArgs{PageID: args[0]}
			if c.Flags().Changed(extension.FlagTitle) {
				t, _ := c.Flags().GetString(extension.FlagTitle)
				upd.Title = &t
			}
			if hasContent {
				upd.Content = &content
			}
			return cmd.PrintResult(c, e.svc.UpdatePage(c.Context(), upd))
		},
	}
	c.Flags().String(extension.FlagTitle, "", "New page title")
	addContentFlags(c)
	return c
}
