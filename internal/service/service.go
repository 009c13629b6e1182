// Package service defines the tool operations shared by the CLI and the MCP
// server. Commands and extensions depend on this interface rather than on
// internal/tools, so either side can be exercised with a stand-in.
package service

import (
	"context"

	"github.com/jpl-au/notionmcp/internal/notion"
)

// Service is the set of document tools.
//
// Tool methods return a Result rather than an error: API failures are
// converted to their user-facing message by Failure.
type Service interface {
	// Search finds pages and databases whose title matches the query.
	Search(ctx context.Context, args SearchArgs) Result

	// Page returns a page's metadata and properties.
	Page(ctx context.Context, args PageArgs) Result

	// PageContent returns a page's title and body rendered as markdown.
	PageContent(ctx context.Context, args PageArgs) Result

	// Markdown returns a page's title and body markdown separately, for
	// callers that need the raw parts (diffing against local files).
	Markdown(ctx context.Context, pageID string) (title, body string, err error)

	// CreatePage creates a child page, optionally with markdown content.
	CreatePage(ctx context.Context, args CreatePageArgs) Result

	// UpdatePage retitles a page and/or appends markdown content.
	UpdatePage(ctx context.Context, args UpdatePageArgs) Result

	// QueryDatabase lists database rows matching an optional filter.
	QueryDatabase(ctx context.Context, args QueryArgs) Result

	// CreateDatabaseEntry adds a row to a database.
	CreateDatabaseEntry(ctx context.Context, args EntryArgs) Result
}

// SearchArgs are the arguments of search_notion.
type SearchArgs struct {
	Query      string
	FilterType string // "", "page" or "database"
}

// PageArgs identify a page.
type PageArgs struct {
	PageID string
}

// CreatePageArgs are the arguments of create_page.
type CreatePageArgs struct {
	ParentID string
	Title    string
	Content  string
}

// UpdatePageArgs are the arguments of update_page. Nil fields are left
// unchanged.
type UpdatePageArgs struct {
	PageID  string
	Title   *string
	Content *string
}

// QueryArgs are the arguments of query_database. Filter and Sorts are
// forwarded to the API as given.
type QueryArgs struct {
	DatabaseID string
	Filter     map[string]any
	Sorts      []any
}

// EntryArgs are the arguments of create_database_entry.
type EntryArgs struct {
	DatabaseID string
	Properties map[string]any
}

// SearchItem is one search_notion result.
type SearchItem struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PageInfo is the get_page payload.
type PageInfo struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	URL            string            `json:"url"`
	CreatedTime    string            `json:"created_time"`
	LastEditedTime string            `json:"last_edited_time"`
	Properties     notion.Properties `json:"properties"`
}

// Row is one query_database result.
type Row struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	URL        string            `json:"url"`
	Properties notion.Properties `json:"properties"`
}
