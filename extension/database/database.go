// Package database provides the database extension.
// Registers commands: query, add.
// Registers MCP tools: query_database, create_database_entry.
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/notionmcp/cmd"
	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the database extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "database".
func (e *Extension) Name() string { return "database" }

// Init takes the shared tool service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Tools()
	return nil
}

// Commands returns the database commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newQueryCmd(),
		e.newAddCmd(),
	}
}

func (e *Extension) newQueryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "query <database-id>",
		Short: "Query database rows",
		Long: `List rows of a database, optionally filtered and sorted. Filter and
sorts use the Notion API's JSON shapes and are passed through unchanged.

  notionmcp query <db>
  notionmcp query <db> --filter '{"property":"Done","checkbox":{"equals":false}}'
  notionmcp query <db> --sorts '[{"property":"Due","direction":"ascending"}]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			q := service.QueryArgs{DatabaseID: args[0]}
			if s, _ := c.Flags().GetString(extension.FlagFilter); s != "" {
				if err := json.Unmarshal([]byte(s), &q.Filter); err != nil {
					return cmd.PrintJSONError(fmt.Errorf("--%s must be a JSON object: %w", extension.FlagFilter, err))
				}
			}
			if s, _ := c.Flags().GetString(extension.FlagSorts); s != "" {
				if err := json.Unmarshal([]byte(s), &q.Sorts); err != nil {
					return cmd.PrintJSONError(fmt.Errorf("--%s must be a JSON array: %w", extension.FlagSorts, err))
				}
			}
			return cmd.PrintResult(c, e.svc.QueryDatabase(c.Context(), q))
		},
	}
	c.Flags().String(extension.FlagFilter, "", "Filter object as JSON")
	c.Flags().String(extension.FlagSorts, "", "Sort array as JSON")
	return c
}

func (e *Extension) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <database-id> <properties-json>",
		Short: "Add a database row",
		Long: `Create a row in a database. Properties use the Notion API's property
value shapes, keyed by property name.

  notionmcp add <db> '{"Name":{"title":[{"text":{"content":"Buy milk"}}]}}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			var props map[string]any
			if err := json.Unmarshal([]byte(args[1]), &props); err != nil {
				return cmd.PrintJSONError(fmt.Errorf("properties must be a JSON object: %w", err))
			}
			return cmd.PrintResult(c, e.svc.CreateDatabaseEntry(c.Context(), service.EntryArgs{
				DatabaseID: args[0],
				Properties: props,
			}))
		},
	}
}

// MCPTools returns the database tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool(service.OpQueryDatabase.Tool,
				mcp.WithDescription("Query rows of a Notion database with an optional filter and sorts"),
				mcp.WithString("database_id", mcp.Required(), mcp.Description("Database id")),
				mcp.WithObject("filter_condition", mcp.Description("Notion filter object, passed through unchanged")),
				mcp.WithArray("sorts", mcp.Description("Notion sort objects, passed through unchanged")),
			),
			Handler: queryHandler,
		},
		{
			Tool: mcp.NewTool(service.OpCreateEntry.Tool,
				mcp.WithDescription("Add a row to a Notion database"),
				mcp.WithString("database_id", mcp.Required(), mcp.Description("Database id")),
				mcp.WithObject("properties", mcp.Required(), mcp.Description("Property values keyed by property name, in Notion API shape")),
			),
			Handler: createEntryHandler,
		},
	}
}

func queryHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpQueryDatabase)
	if errRes != nil {
		return errRes, nil
	}
	filter := extension.ObjectArg(req, "filter_condition")
	if filter == nil {
		// Older clients send the Notion request field name.
		filter = extension.ObjectArg(req, "filter")
	}
	return extension.ToolResult(svc.QueryDatabase(ctx, service.QueryArgs{
		DatabaseID: extension.StringArg(req, "database_id", ""),
		Filter:     filter,
		Sorts:      extension.ArrayArg(req, "sorts"),
	})), nil
}

func createEntryHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpCreateEntry)
	if errRes != nil {
		return errRes, nil
	}
	return extension.ToolResult(svc.CreateDatabaseEntry(ctx, service.EntryArgs{
		DatabaseID: extension.StringArg(req, "database_id", ""),
		Properties: extension.ObjectArg(req, "properties"),
	})), nil
}
