// commands.go implements the script subcommands. With -o json each
// command prints the same envelope the MCP tool returns.

package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/notionmcp/cmd"
	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/diff"
	"github.com/jpl-au/notionmcp/internal/script"
)

// printEnvelope writes an envelope in JSON mode. A failed envelope still
// exits 1.
func printEnvelope(c *cobra.Command, env script.Envelope) error {
	fmt.Fprintln(cmd.Out(), env.String())
	if !env.Success {
		c.SilenceErrors = true
		return errors.New(env.Error)
	}
	return nil
}

func (e *Extension) newNewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "new <keyword>",
		Short: "Create a script file",
		Long: `Create a script file for a keyword. The script body is read from
--file, or from stdin when no file is given.

  notionmcp script new "morning routine" --file draft.txt
  echo "Hook: ..." | notionmcp script new "morning routine"`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			content, err := readBody(c)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			if cmd.JSON() {
				return printEnvelope(c, e.store.CreateEnvelope(args[0], content))
			}
			f, err := e.store.Create(args[0], content)
			if err != nil {
				return fmt.Errorf("creating script: %w", err)
			}
			fmt.Fprintf(cmd.Out(), "Created %s\n", f.Path)
			return nil
		},
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read the script body from a file")
	return c
}

func readBody(c *cobra.Command) (string, error) {
	file, _ := c.Flags().GetString(extension.FlagFile)
	if file != "" && file != "-" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(c.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List script files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if cmd.JSON() {
				return printEnvelope(c, e.store.ListEnvelope())
			}
			files, err := e.store.List()
			if err != nil {
				return fmt.Errorf("listing scripts: %w", err)
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.Out(), "No script files have been created yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.Out(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tSIZE\tKEYWORD\tFILE")
			for _, f := range files {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					f.CreatedAt.Local().Format(time.DateTime), f.Size, f.Keyword, f.Name)
			}
			return w.Flush()
		},
	}
}

func (e *Extension) newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <filename>",
		Short: "Print a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if cmd.JSON() {
				return printEnvelope(c, e.store.ReadEnvelope(args[0]))
			}
			content, err := e.store.Read(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <filename>",
		Short: "Delete a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if cmd.JSON() {
				return printEnvelope(c, e.store.DeleteEnvelope(args[0]))
			}
			if err := e.store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.Out(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (e *Extension) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare the bodies of two script files",
		Long:  `Show line differences between two script files, ignoring their front matter.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			a, _, err := e.store.Body(args[0])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			b, _, err := e.store.Body(args[1])
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			r := diff.Compute(a, b, args[0], args[1])
			if cmd.JSON() {
				return cmd.PrintJSON(r)
			}
			fmt.Fprint(cmd.Out(), r.Format(term.IsTerminal(int(os.Stdout.Fd()))))
			return nil
		},
	}
}
