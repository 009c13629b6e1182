// types.go defines the subset of the Notion object model the tools read and
// write: rich text spans, blocks, and page/database records.
//
// Blocks are a tagged variant. Type names the kind and exactly one payload
// pointer matching it is set; kinds outside the supported set decode with
// only Type populated, which the renderer treats as unsupported.

package notion

import (
	"encoding/json"
)

// BlockType identifies the kind of a block.
type BlockType string

// Supported block kinds.
const (
	Paragraph        BlockType = "paragraph"
	Heading1         BlockType = "heading_1"
	Heading2         BlockType = "heading_2"
	Heading3         BlockType = "heading_3"
	BulletedListItem BlockType = "bulleted_list_item"
	NumberedListItem BlockType = "numbered_list_item"
	ToDo             BlockType = "to_do"
	Code             BlockType = "code"
)

// Object kinds returned by search.
const (
	ObjectPage     = "page"
	ObjectDatabase = "database"
)

// RichText is one run of text. Only the plain text is interpreted; styling
// is ignored.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the literal content of a text span.
type TextContent struct {
	Content string `json:"content"`
}

// NewText returns a text span for s. PlainText is populated so the span
// reads back the same way a span fetched from the API would.
func NewText(s string) RichText {
	return RichText{Type: "text", Text: &TextContent{Content: s}, PlainText: s}
}

// MarshalJSON omits plain_text, which the API computes and rejects on input.
func (r RichText) MarshalJSON() ([]byte, error) {
	type request struct {
		Type string       `json:"type,omitempty"`
		Text *TextContent `json:"text,omitempty"`
	}
	return json.Marshal(request{Type: r.Type, Text: r.Text})
}

// TextBlock is the payload shared by paragraphs, headings and list items.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// ToDoBlock is a checkbox item.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// Block is one structural unit of a page.
type Block struct {
	Object      string    `json:"object,omitempty"`
	ID          string    `json:"id,omitempty"`
	Type        BlockType `json:"type"`
	HasChildren bool      `json:"has_children,omitempty"`

	Paragraph        *TextBlock `json:"paragraph,omitempty"`
	Heading1         *TextBlock `json:"heading_1,omitempty"`
	Heading2         *TextBlock `json:"heading_2,omitempty"`
	Heading3         *TextBlock `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoBlock `json:"to_do,omitempty"`
	Code             *CodeBlock `json:"code,omitempty"`
}

// NewTextBlock builds a block of kind t holding a single text span. Only
// kinds backed by TextBlock are accepted; other kinds yield a paragraph.
func NewTextBlock(t BlockType, text string) Block {
	payload := &TextBlock{RichText: []RichText{NewText(text)}}
	b := Block{Object: "block", Type: t}
	switch t {
	case Heading1:
		b.Heading1 = payload
	case Heading2:
		b.Heading2 = payload
	case Heading3:
		b.Heading3 = payload
	case BulletedListItem:
		b.BulletedListItem = payload
	case NumberedListItem:
		b.NumberedListItem = payload
	default:
		b.Type = Paragraph
		b.Paragraph = payload
	}
	return b
}

// RichText returns the spans of a supported block and whether the block's
// payload was present.
func (b Block) RichText() ([]RichText, bool) {
	switch b.Type {
	case Paragraph:
		return textOf(b.Paragraph)
	case Heading1:
		return textOf(b.Heading1)
	case Heading2:
		return textOf(b.Heading2)
	case Heading3:
		return textOf(b.Heading3)
	case BulletedListItem:
		return textOf(b.BulletedListItem)
	case NumberedListItem:
		return textOf(b.NumberedListItem)
	case ToDo:
		if b.ToDo == nil {
			return nil, false
		}
		return b.ToDo.RichText, true
	case Code:
		if b.Code == nil {
			return nil, false
		}
		return b.Code.RichText, true
	}
	return nil, false
}

func textOf(t *TextBlock) ([]RichText, bool) {
	if t == nil {
		return nil, false
	}
	return t.RichText, true
}

// Record is a page or database as returned by the API. Pages carry their
// title inside Properties; databases carry it in Title.
type Record struct {
	Object         string     `json:"object"`
	ID             string     `json:"id"`
	URL            string     `json:"url,omitempty"`
	CreatedTime    string     `json:"created_time,omitempty"`
	LastEditedTime string     `json:"last_edited_time,omitempty"`
	Properties     Properties `json:"properties"`
	Title          Spans      `json:"title,omitempty"`
}

// Spans is a rich text list that decodes leniently: a value that is not an
// array of spans decodes as empty instead of failing the whole record.
type Spans []RichText

// UnmarshalJSON implements json.Unmarshaler.
func (s *Spans) UnmarshalJSON(data []byte) error {
	var spans []RichText
	if err := json.Unmarshal(data, &spans); err != nil {
		*s = nil
		return nil
	}
	*s = spans
	return nil
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query    string        `json:"query"`
	Filter   *SearchFilter `json:"filter,omitempty"`
	PageSize int           `json:"page_size,omitempty"`
}

// SearchFilter restricts search results to one object kind.
type SearchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

// Parent identifies where a page is created. Exactly one field is set.
type Parent struct {
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

// CreatePageRequest is the body of POST /pages.
type CreatePageRequest struct {
	Parent     Parent         `json:"parent"`
	Properties map[string]any `json:"properties"`
	Children   []Block        `json:"children,omitempty"`
}

// QueryRequest is the body of POST /databases/{id}/query. Filter and Sorts
// are passed through untouched.
type QueryRequest struct {
	Filter   any `json:"filter,omitempty"`
	Sorts    any `json:"sorts,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// TitleProperty builds the properties value that sets a page title.
func TitleProperty(title string) map[string]any {
	return map[string]any{
		"title": map[string]any{
			"title": []map[string]any{
				{"text": map[string]any{"content": title}},
			},
		},
	}
}
