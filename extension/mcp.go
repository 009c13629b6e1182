// mcp.go defines types for MCP tool registration by extensions, and the
// helpers handlers use to read arguments and build results.
//
// Design: MCPTool pairs the tool definition with its handler, enabling
// extensions to register complete tool implementations. The handler
// receives both Go context (for cancellation) and extension Context (for
// service access).
//
// Argument helpers are permissive: a missing or mistyped optional argument
// yields the default rather than a type error. Required arguments are
// checked by the tool service, which reports them in the usual failure
// format.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/script"
	"github.com/jpl-au/notionmcp/internal/service"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// RequireTools returns the tool service, or an error result naming the
// activity when no token is configured.
func RequireTools(extCtx Context, op service.Operation) (service.Service, *mcp.CallToolResult) {
	if svc := extCtx.Tools(); svc != nil {
		return svc, nil
	}
	return nil, ToolResult(service.Failure(op, config.ErrNoToken))
}

// ToolResult converts a tool outcome to an MCP result. Failures become
// error results carrying the formatted text.
func ToolResult(r service.Result) *mcp.CallToolResult {
	if r.Failed() {
		return mcp.NewToolResultError(r.Text)
	}
	return mcp.NewToolResultText(r.Text)
}

// EnvelopeResult converts a script envelope to an MCP result.
func EnvelopeResult(e script.Envelope) *mcp.CallToolResult {
	if !e.Success {
		return mcp.NewToolResultError(e.String())
	}
	return mcp.NewToolResultText(e.String())
}

// StringArg returns a string argument, or def when missing or not a string.
func StringArg(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// OptionalString returns a pointer to a string argument, or nil when the
// argument is absent.
func OptionalString(req mcp.CallToolRequest, name string) *string {
	v, err := req.RequireString(name)
	if err != nil {
		return nil
	}
	return &v
}

// ObjectArg returns an object argument, or nil when missing or not an object.
func ObjectArg(req mcp.CallToolRequest, name string) map[string]any {
	v, _ := req.GetArguments()[name].(map[string]any)
	return v
}

// ArrayArg returns an array argument, or nil when missing or not an array.
func ArrayArg(req mcp.CallToolRequest, name string) []any {
	v, _ := req.GetArguments()[name].([]any)
	return v
}
