// audit.go implements the "notionmcp audit" command, listing recent tool
// calls from the audit log.

package core

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/cmd"
	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/log"
)

func newAuditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "audit",
		Short: "Show recent tool calls",
		Long: `List recent entries from the audit log, newest first.

  notionmcp audit                               # last 20 calls
  notionmcp audit --limit 50
  notionmcp audit --source tools:create_page    # one tool only

The log lives at $XDG_STATE_HOME/notionmcp/audit.db.`,
		Args: cobra.NoArgs,
		RunE: runAudit,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Maximum entries to show")
	c.Flags().String(extension.FlagSource, "", "Only show entries from this source")
	return c
}

func runAudit(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	source, _ := c.Flags().GetString(extension.FlagSource)

	recs, err := log.Recent(c.Context(), log.Query{Limit: limit, Source: source})
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("audit: %w", err))
	}
	if cmd.JSON() {
		if recs == nil {
			recs = []log.Record{}
		}
		return cmd.PrintJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.Out(), "No audit entries.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.Out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tORIGIN\tSOURCE\tACTION\tTARGET\tDURATION\tSTATUS")
	for _, r := range recs {
		status := "ok"
		if !r.Success {
			status = "error: " + r.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Time.Local().Format(time.DateTime), dash(r.Origin), r.Source, r.Action,
			dash(r.Target), r.Duration, status)
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
