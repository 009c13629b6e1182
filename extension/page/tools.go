// tools.go defines the page MCP tools. Handlers read arguments
// permissively and leave validation of required values to the tool
// service, so a missing id is reported in the same format as an API error.

package page

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/service"
)

// MCPTools returns the search and page tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool(service.OpSearch.Tool,
				mcp.WithDescription("Search Notion pages and databases by title"),
				mcp.WithString("query", mcp.Required(), mcp.Description("Search text; may be empty to list everything shared with the integration")),
				mcp.WithString("filter_type", mcp.Description("Only return this object type"), mcp.Enum("page", "database")),
			),
			Handler: searchHandler,
		},
		{
			Tool: mcp.NewTool(service.OpPage.Tool,
				mcp.WithDescription("Get a page's metadata and raw properties"),
				mcp.WithString("page_id", mcp.Required(), mcp.Description("Page id, with or without dashes, or a notion.so URL")),
			),
			Handler: pageHandler,
		},
		{
			Tool: mcp.NewTool(service.OpPageContent.Tool,
				mcp.WithDescription("Get a page's content as markdown, including nested blocks"),
				mcp.WithString("page_id", mcp.Required(), mcp.Description("Page id, with or without dashes, or a notion.so URL")),
			),
			Handler: pageContentHandler,
		},
		{
			Tool: mcp.NewTool(service.OpCreatePage.Tool,
				mcp.WithDescription("Create a child page with optional markdown content. Supports # headings, - bullets and paragraphs"),
				mcp.WithString("parent_id", mcp.Required(), mcp.Description("Id of the parent page")),
				mcp.WithString("title", mcp.Required(), mcp.Description("Page title")),
				mcp.WithString("content", mcp.Description("Markdown body")),
			),
			Handler: createPageHandler,
		},
		{
			Tool: mcp.NewTool(service.OpUpdatePage.Tool,
				mcp.WithDescription("Change a page title and/or append markdown content to the end of the page"),
				mcp.WithString("page_id", mcp.Required(), mcp.Description("Page id")),
				mcp.WithString("title", mcp.Description("New title; empty leaves the title unchanged")),
				mcp.WithString("content", mcp.Description("Markdown appended after the existing content")),
			),
			Handler: updatePageHandler,
		},
	}
}

func searchHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpSearch)
	if errRes != nil {
		return errRes, nil
	}
	return extension.ToolResult(svc.Search(ctx, service.SearchArgs{
		Query:      extension.StringArg(req, "query", ""),
		FilterType: extension.StringArg(req, "filter_type", ""),
	})), nil
}

func pageHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpPage)
	if errRes != nil {
		return errRes, nil
	}
	return extension.ToolResult(svc.Page(ctx, service.PageArgs{
		PageID: extension.StringArg(req, "page_id", ""),
	})), nil
}

func pageContentHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpPageContent)
	if errRes != nil {
		return errRes, nil
	}
	return extension.ToolResult(svc.PageContent(ctx, service.PageArgs{
		PageID: extension.StringArg(req, "page_id", ""),
	})), nil
}

func createPageHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpCreatePage)
	if errRes != nil {
		return errRes, nil
	}
	return extension.ToolResult(svc.CreatePage(ctx, service.CreatePageArgs{
		ParentID: extension.StringArg(req, "parent_id", ""),
		Title:    extension.StringArg(req, "title", ""),
		Content:  extension.StringArg(req, "content", ""),
	})), nil
}

func updatePageHandler(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := extension.RequireTools(extCtx, service.OpUpdatePage)
	if errRes != nil {
		return errRes, nil
	}
	return extension.ToolResult(svc.UpdatePage(ctx, service.UpdatePageArgs{
		PageID:  extension.StringArg(req, "page_id", ""),
		Title:   extension.OptionalString(req, "title"),
		Content: extension.OptionalString(req, "content"),
	})), nil
}
