// tools.go defines the script MCP tools. Each returns the JSON envelope of
// the matching store operation.

package script

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/notionmcp/extension"
)

// MCPTools returns the script file tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("create_script_file",
				mcp.WithDescription("Save a YouTube Shorts script as a markdown file named after its keyword"),
				mcp.WithString("keyword", mcp.Required(), mcp.Description("Topic keyword of the script")),
				mcp.WithString("script_content", mcp.Required(), mcp.Description("The script text")),
			),
			Handler: createHandler,
		},
		{
			Tool: mcp.NewTool("list_script_files",
				mcp.WithDescription("List saved script files, newest first"),
			),
			Handler: listHandler,
		},
		{
			Tool: mcp.NewTool("get_script_content",
				mcp.WithDescription("Read a saved script file"),
				mcp.WithString("filename", mcp.Required(), mcp.Description("File name as returned by list_script_files")),
			),
			Handler: readHandler,
		},
		{
			Tool: mcp.NewTool("delete_script_file",
				mcp.WithDescription("Delete a saved script file"),
				mcp.WithString("filename", mcp.Required(), mcp.Description("File name as returned by list_script_files")),
			),
			Handler: deleteHandler,
		},
	}
}

func createHandler(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return extension.EnvelopeResult(extCtx.Scripts().CreateEnvelope(
		extension.StringArg(req, "keyword", ""),
		extension.StringArg(req, "script_content", ""),
	)), nil
}

func listHandler(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return extension.EnvelopeResult(extCtx.Scripts().ListEnvelope()), nil
}

func readHandler(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return extension.EnvelopeResult(extCtx.Scripts().ReadEnvelope(extension.StringArg(req, "filename", ""))), nil
}

func deleteHandler(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return extension.EnvelopeResult(extCtx.Scripts().DeleteEnvelope(extension.StringArg(req, "filename", ""))), nil
}
