// Package notiontest provides an in-memory notion.API for tests.
package notiontest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jpl-au/notionmcp/internal/notion"
)

// Fake is an in-memory notion.API. Populate its maps directly; set Err* to
// make the matching call fail. Every call is recorded in Calls.
type Fake struct {
	mu sync.Mutex

	// Pages by id, returned by RetrievePage.
	Pages map[string]notion.Record
	// Children by parent block id, returned by ListBlockChildren.
	Children map[string][]notion.Block
	// SearchResults is returned by Search regardless of the query.
	SearchResults []notion.Record
	// Rows by database id, returned by QueryDatabase.
	Rows map[string][]notion.Record

	// Failures by method name ("Search", "ListBlockChildren:<id>", ...).
	Errs map[string]error

	// Recorded requests.
	Calls    []string
	Searches []notion.SearchRequest
	Creates  []notion.CreatePageRequest
	Updates  map[string][]map[string]any
	Appended map[string][]notion.Block
	Queries  map[string][]notion.QueryRequest

	nextID int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Pages:    make(map[string]notion.Record),
		Children: make(map[string][]notion.Block),
		Rows:     make(map[string][]notion.Record),
		Errs:     make(map[string]error),
		Updates:  make(map[string][]map[string]any),
		Appended: make(map[string][]notion.Block),
		Queries:  make(map[string][]notion.QueryRequest),
	}
}

var _ notion.API = (*Fake)(nil)

func (f *Fake) record(call string) error {
	f.Calls = append(f.Calls, call)
	if err, ok := f.Errs[call]; ok {
		return err
	}
	return nil
}

// fail checks both the bare method name and the method:id form.
func (f *Fake) fail(method, id string) error {
	if err := f.record(method + ":" + id); err != nil {
		return err
	}
	if err, ok := f.Errs[method]; ok {
		return err
	}
	return nil
}

// Search implements notion.API.
func (f *Fake) Search(_ context.Context, req notion.SearchRequest) ([]notion.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Searches = append(f.Searches, req)
	if err := f.record("Search"); err != nil {
		return nil, err
	}
	return f.SearchResults, nil
}

// RetrievePage implements notion.API.
func (f *Fake) RetrievePage(_ context.Context, pageID string) (notion.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("RetrievePage", pageID); err != nil {
		return notion.Record{}, err
	}
	p, ok := f.Pages[pageID]
	if !ok {
		return notion.Record{}, &notion.APIError{Status: 404, Code: "object_not_found", Message: "Could not find page with ID: " + pageID}
	}
	return p, nil
}

// ListBlockChildren implements notion.API.
func (f *Fake) ListBlockChildren(_ context.Context, blockID string) ([]notion.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListBlockChildren", blockID); err != nil {
		return nil, err
	}
	return f.Children[blockID], nil
}

// CreatePage implements notion.API. The created page gets a sequential id.
func (f *Fake) CreatePage(_ context.Context, req notion.CreatePageRequest) (notion.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Creates = append(f.Creates, req)
	if err := f.record("CreatePage"); err != nil {
		return notion.Record{}, err
	}
	f.nextID++
	id := fmt.Sprintf("created-%d", f.nextID)
	rec := notion.Record{Object: notion.ObjectPage, ID: id, URL: "https://www.notion.so/" + id}
	f.Pages[id] = rec
	return rec, nil
}

// UpdatePage implements notion.API.
func (f *Fake) UpdatePage(_ context.Context, pageID string, properties map[string]any) (notion.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpdatePage", pageID); err != nil {
		return notion.Record{}, err
	}
	f.Updates[pageID] = append(f.Updates[pageID], properties)
	return notion.Record{Object: notion.ObjectPage, ID: pageID}, nil
}

// AppendBlockChildren implements notion.API.
func (f *Fake) AppendBlockChildren(_ context.Context, blockID string, children []notion.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AppendBlockChildren", blockID); err != nil {
		return err
	}
	f.Appended[blockID] = append(f.Appended[blockID], children...)
	return nil
}

// QueryDatabase implements notion.API.
func (f *Fake) QueryDatabase(_ context.Context, databaseID string, req notion.QueryRequest) ([]notion.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queries[databaseID] = append(f.Queries[databaseID], req)
	if err := f.fail("QueryDatabase", databaseID); err != nil {
		return nil, err
	}
	return f.Rows[databaseID], nil
}

// Page builds a page record whose "Name" property holds title.
func Page(id, title string) notion.Record {
	return notion.Record{
		Object:         notion.ObjectPage,
		ID:             id,
		URL:            "https://www.notion.so/" + id,
		CreatedTime:    "2024-01-01T00:00:00.000Z",
		LastEditedTime: "2024-01-02T00:00:00.000Z",
		Properties: notion.NewProperties(notion.Property{
			Name: "Name",
			Value: map[string]any{
				"id":    "title",
				"type":  "title",
				"title": []map[string]any{{"type": "text", "plain_text": title}},
			},
		}),
	}
}

// Database builds a database record with a top-level title.
func Database(id, title string) notion.Record {
	return notion.Record{
		Object: notion.ObjectDatabase,
		ID:     id,
		URL:    "https://www.notion.so/" + id,
		Title:  notion.Spans{{Type: "text", PlainText: title}},
	}
}
