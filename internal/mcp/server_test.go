package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/notionmcp/extension"
	_ "github.com/jpl-au/notionmcp/extension/all"
	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/mcp"
	"github.com/jpl-au/notionmcp/internal/notion"
	"github.com/jpl-au/notionmcp/internal/notion/notiontest"
	"github.com/jpl-au/notionmcp/internal/script"
	"github.com/jpl-au/notionmcp/internal/tools"
)

const pageID = "01234567-89ab-cdef-0123-456789abcdef"

// rpcResponse is the decoded form of a JSON-RPC reply.
type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type toolResult struct {
	IsError bool `json:"isError"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (r toolResult) text() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

type harness struct {
	t    *testing.T
	srv  *server.MCPServer
	next int
}

// newHarness builds a server over a fake API. A nil api leaves the server
// without a token.
func newHarness(t *testing.T, api *notiontest.Fake) *harness {
	t.Helper()

	store := script.New(filepath.Join(t.TempDir(), "scripts"))
	cfg := &config.Config{}

	// A nil *tools.Service must not reach NewContext as a non-nil interface.
	extCtx := extension.NewContext(nil, store, cfg)
	if api != nil {
		extCtx = extension.NewContext(tools.New(api), store, cfg)
	}

	srv, err := mcp.NewServer(extCtx)
	require.NoError(t, err)

	h := &harness{t: t, srv: srv}
	h.call("initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"clientInfo":      map[string]any{"name": "test", "version": "1.0.0"},
		"capabilities":    map[string]any{},
	})
	return h
}

func (h *harness) call(method string, params any) rpcResponse {
	h.t.Helper()
	h.next++
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      h.next,
		"method":  method,
		"params":  params,
	})
	require.NoError(h.t, err)

	reply := h.srv.HandleMessage(context.Background(), msg)
	data, err := json.Marshal(reply)
	require.NoError(h.t, err)

	var resp rpcResponse
	require.NoError(h.t, json.Unmarshal(data, &resp))
	return resp
}

func (h *harness) tool(name string, args map[string]any) toolResult {
	h.t.Helper()
	resp := h.call("tools/call", map[string]any{"name": name, "arguments": args})
	require.Nil(h.t, resp.Error, "tools/call %s", name)

	var res toolResult
	require.NoError(h.t, json.Unmarshal(resp.Result, &res))
	return res
}

func (h *harness) readResource(uri string) (string, rpcResponse) {
	h.t.Helper()
	resp := h.call("resources/read", map[string]any{"uri": uri})
	if resp.Error != nil {
		return "", resp
	}
	var res struct {
		Contents []struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"contents"`
	}
	require.NoError(h.t, json.Unmarshal(resp.Result, &res))
	require.Len(h.t, res.Contents, 1)
	return res.Contents[0].Text, resp
}

func TestToolsList(t *testing.T) {
	h := newHarness(t, notiontest.New())

	resp := h.call("tools/list", map[string]any{})
	require.Nil(t, resp.Error)

	var res struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &res))

	var names []string
	required := make(map[string][]string)
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		required[tool.Name] = tool.InputSchema.Required
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"create_database_entry",
		"create_page",
		"create_script_file",
		"delete_script_file",
		"get_page",
		"get_page_content",
		"get_script_content",
		"list_script_files",
		"query_database",
		"search_notion",
		"update_page",
	}, names)
	assert.ElementsMatch(t, []string{"parent_id", "title"}, required["create_page"])
	assert.ElementsMatch(t, []string{"database_id", "properties"}, required["create_database_entry"])
	assert.Empty(t, required["list_script_files"])
}

func TestToolCall_Search(t *testing.T) {
	api := notiontest.New()
	api.SearchResults = []notion.Record{notiontest.Page(pageID, "Roadmap")}
	h := newHarness(t, api)

	res := h.tool("search_notion", map[string]any{"query": "road", "filter_type": "page"})
	assert.False(t, res.IsError)
	assert.Contains(t, res.text(), "Search results (1):")
	assert.Contains(t, res.text(), "Roadmap")

	require.Len(t, api.Searches, 1)
	assert.Equal(t, "road", api.Searches[0].Query)
}

func TestToolCall_PageContent(t *testing.T) {
	api := notiontest.New()
	api.Pages[pageID] = notiontest.Page(pageID, "Roadmap")
	h := newHarness(t, api)

	res := h.tool("get_page_content", map[string]any{"page_id": "0123456789abcdef0123456789abcdef"})
	assert.False(t, res.IsError)
	assert.Equal(t, "# Roadmap\n\n", res.text())
}

func TestToolCall_Failure(t *testing.T) {
	h := newHarness(t, notiontest.New())

	res := h.tool("get_page", map[string]any{"page_id": pageID})
	assert.True(t, res.IsError)
	assert.Contains(t, res.text(), "An error occurred while retrieving the page")
	assert.Contains(t, res.text(), "object_not_found")

	res = h.tool("create_page", map[string]any{"parent_id": pageID})
	assert.True(t, res.IsError)
	assert.Contains(t, res.text(), "missing required argument: title")
}

func TestToolCall_UpdatePage(t *testing.T) {
	api := notiontest.New()
	h := newHarness(t, api)

	res := h.tool("update_page", map[string]any{"page_id": pageID, "content": "- new item"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Page updated successfully!", res.text())
	assert.Empty(t, api.Updates[pageID])
	assert.Len(t, api.Appended[pageID], 1)
}

func TestToolCall_Database(t *testing.T) {
	const dbID = "fedcba98-7654-3210-fedc-ba9876543210"
	api := notiontest.New()
	api.Rows[dbID] = []notion.Record{notiontest.Page("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", "Task A")}
	h := newHarness(t, api)

	res := h.tool("query_database", map[string]any{
		"database_id":      dbID,
		"filter_condition": map[string]any{"property": "Done", "checkbox": map[string]any{"equals": false}},
		"sorts":            []any{map[string]any{"property": "Due", "direction": "ascending"}},
	})
	assert.False(t, res.IsError)
	assert.Contains(t, res.text(), "Task A")
	require.Len(t, api.Queries[dbID], 1)
	assert.NotNil(t, api.Queries[dbID][0].Filter)
	assert.NotNil(t, api.Queries[dbID][0].Sorts)

	res = h.tool("create_database_entry", map[string]any{
		"database_id": dbID,
		"properties":  map[string]any{"Name": map[string]any{"title": []any{}}},
	})
	assert.False(t, res.IsError)
	assert.Contains(t, res.text(), "Database entry created successfully!")
	require.Len(t, api.Creates, 1)
	assert.Equal(t, dbID, api.Creates[0].Parent.DatabaseID)
}

func TestToolCall_NoToken(t *testing.T) {
	h := newHarness(t, nil)

	res := h.tool("search_notion", map[string]any{"query": "x"})
	assert.True(t, res.IsError)
	assert.Contains(t, res.text(), "An error occurred while searching: NOTION_TOKEN is not set")

	// Script tools keep working.
	res = h.tool("list_script_files", map[string]any{})
	assert.False(t, res.IsError)
	assert.Contains(t, res.text(), "No script files have been created yet.")
}

func TestToolCall_Scripts(t *testing.T) {
	h := newHarness(t, nil)

	res := h.tool("create_script_file", map[string]any{"keyword": "coffee tips", "script_content": "Hook line."})
	require.False(t, res.IsError, res.text())

	var created script.Envelope
	require.NoError(t, json.Unmarshal([]byte(res.text()), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "coffee tips", created.Keyword)

	res = h.tool("get_script_content", map[string]any{"filename": created.Filename})
	assert.False(t, res.IsError)
	assert.Contains(t, res.text(), "Hook line.")

	res = h.tool("delete_script_file", map[string]any{"filename": created.Filename})
	assert.False(t, res.IsError)

	res = h.tool("get_script_content", map[string]any{"filename": created.Filename})
	assert.True(t, res.IsError)
	assert.Contains(t, res.text(), `"success": false`)
}

func TestResources_Guide(t *testing.T) {
	h := newHarness(t, nil)

	text, _ := h.readResource("notionmcp://guide")
	assert.Contains(t, text, "# notionmcp")

	text, _ = h.readResource("notionmcp://guide/markdown")
	assert.NotEmpty(t, text)

	_, resp := h.readResource("notionmcp://guide/missing")
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "unknown guide topic")
}

func TestResources_Page(t *testing.T) {
	api := notiontest.New()
	api.Pages[pageID] = notiontest.Page(pageID, "Roadmap")
	h := newHarness(t, api)

	text, _ := h.readResource("notionmcp://pages/" + pageID)
	assert.Equal(t, "# Roadmap\n\n", text)

	noToken := newHarness(t, nil)
	_, resp := noToken.readResource("notionmcp://pages/" + pageID)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "NOTION_TOKEN is not set")
}

func TestServe_NoToken(t *testing.T) {
	store := script.New(filepath.Join(t.TempDir(), "scripts"))
	err := mcp.Serve(extension.NewContext(nil, store, &config.Config{}))
	assert.ErrorIs(t, err, config.ErrNoToken)
}
