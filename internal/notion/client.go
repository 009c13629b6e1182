// Package notion is a small client for the Notion REST API covering the
// operations the tool server needs: search, page retrieval and creation,
// page property updates, block children listing and appending, and
// database queries.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Defaults used when no option overrides them.
const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
	DefaultTimeout = 30 * time.Second

	// pageSize is the largest page the API serves.
	pageSize = 100
	// maxAppend is the most children one append request may carry.
	maxAppend = 100
)

// API is the set of document operations the tools depend on.
type API interface {
	Search(ctx context.Context, req SearchRequest) ([]Record, error)
	RetrievePage(ctx context.Context, pageID string) (Record, error)
	ListBlockChildren(ctx context.Context, blockID string) ([]Block, error)
	CreatePage(ctx context.Context, req CreatePageRequest) (Record, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]any) (Record, error)
	AppendBlockChildren(ctx context.Context, blockID string, children []Block) error
	QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) ([]Record, error)
}

// Client talks to the API over HTTPS. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	version string
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL string
	version string
	timeout time.Duration
	base    http.RoundTripper
}

// WithBaseURL points the client at a different API root (tests, proxies).
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimSuffix(u, "/") }
}

// WithVersion sets the Notion-Version header.
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport sets the transport beneath the auth layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// New returns a client authenticating with the integration token.
func New(token string, opts ...Option) *Client {
	o := options{
		baseURL: DefaultBaseURL,
		version: DefaultVersion,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: o.base},
		Timeout:   o.timeout,
	}
	return &Client{http: hc, baseURL: o.baseURL, version: o.version}
}

// Search finds pages and databases shared with the integration. Only the
// first page of results is returned.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Record, error) {
	if req.PageSize == 0 {
		req.PageSize = pageSize
	}
	var resp listResponse[Record]
	if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resp.Results, nil
}

// RetrievePage fetches a page's metadata and properties.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, "/pages/"+url.PathEscape(pageID), nil, &rec); err != nil {
		return Record{}, fmt.Errorf("retrieve page %s: %w", pageID, err)
	}
	return rec, nil
}

// ListBlockChildren returns every direct child of a block, following
// pagination cursors until the list is exhausted.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var (
		blocks []Block
		cursor string
	)
	for {
		q := url.Values{"page_size": {fmt.Sprint(pageSize)}}
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}
		path := "/blocks/" + url.PathEscape(blockID) + "/children?" + q.Encode()

		var resp listResponse[Block]
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("list children of %s: %w", blockID, err)
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return blocks, nil
		}
		cursor = resp.NextCursor
	}
}

// CreatePage creates a page under a page or database parent.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, "/pages", req, &rec); err != nil {
		return Record{}, fmt.Errorf("create page: %w", err)
	}
	return rec, nil
}

// UpdatePage changes page properties.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) (Record, error) {
	body := map[string]any{"properties": properties}
	var rec Record
	if err := c.do(ctx, http.MethodPatch, "/pages/"+url.PathEscape(pageID), body, &rec); err != nil {
		return Record{}, fmt.Errorf("update page %s: %w", pageID, err)
	}
	return rec, nil
}

// AppendBlockChildren appends blocks to the end of a block's children.
// Large inputs are sent in order as several requests.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []Block) error {
	path := "/blocks/" + url.PathEscape(blockID) + "/children"
	for start := 0; start < len(children); start += maxAppend {
		end := min(start+maxAppend, len(children))
		body := map[string]any{"children": children[start:end]}
		if err := c.do(ctx, http.MethodPatch, path, body, nil); err != nil {
			return fmt.Errorf("append children to %s: %w", blockID, err)
		}
	}
	return nil
}

// QueryDatabase returns the first page of rows matching the filter.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) ([]Record, error) {
	if req.PageSize == 0 {
		req.PageSize = pageSize
	}
	var resp listResponse[Record]
	if err := c.do(ctx, http.MethodPost, "/databases/"+url.PathEscape(databaseID)+"/query", req, &resp); err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	return resp.Results, nil
}

// listResponse is the envelope of every paginated endpoint.
type listResponse[T any] struct {
	Results    []T    `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// do sends one request and decodes the JSON response into out (if non-nil).
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
