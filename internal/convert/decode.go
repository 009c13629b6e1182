package convert

import (
	"context"
	"strings"

	"github.com/jpl-au/notionmcp/internal/notion"
)

// segmentSep separates rendered blocks in the output.
const segmentSep = "\n\n"

// ChildrenFunc fetches the direct children of a block.
type ChildrenFunc func(ctx context.Context, blockID string) ([]notion.Block, error)

// Decoder renders block trees as markdown. Children of blocks flagged
// has_children are fetched through Children one block at a time.
type Decoder struct {
	Children ChildrenFunc
}

// NewDecoder returns a Decoder fetching children from api.
func NewDecoder(api notion.API) Decoder {
	return Decoder{Children: api.ListBlockChildren}
}

// Decode renders blocks as markdown. A failed child fetch aborts the whole
// render and no partial output is returned.
func (d Decoder) Decode(ctx context.Context, blocks []notion.Block) (string, error) {
	return d.renderSequence(ctx, blocks)
}

func (d Decoder) renderSequence(ctx context.Context, blocks []notion.Block) (string, error) {
	var segments []string
	for _, b := range blocks {
		segs, err := d.renderBlock(ctx, b)
		if err != nil {
			return "", err
		}
		segments = append(segments, segs...)
	}
	return strings.Join(segments, segmentSep), nil
}

// renderBlock returns the block's own line followed by its rendered
// children, omitting either when empty.
func (d Decoder) renderBlock(ctx context.Context, b notion.Block) ([]string, error) {
	var segs []string
	if text := renderText(b); text != "" {
		segs = append(segs, text)
	}
	if !b.HasChildren || d.Children == nil {
		return segs, nil
	}

	children, err := d.Children(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	nested, err := d.renderSequence(ctx, children)
	if err != nil {
		return nil, err
	}
	if nested != "" {
		segs = append(segs, nested)
	}
	return segs, nil
}

// renderText renders a single block without its children. Unsupported kinds
// render as the empty string.
func renderText(b notion.Block) string {
	spans, ok := b.RichText()
	if !ok {
		return ""
	}
	text := PlainText(spans)

	switch b.Type {
	case notion.Paragraph:
		return text
	case notion.Heading1:
		return "# " + text
	case notion.Heading2:
		return "## " + text
	case notion.Heading3:
		return "### " + text
	case notion.BulletedListItem:
		return "- " + text
	case notion.NumberedListItem:
		return "1. " + text
	case notion.ToDo:
		if b.ToDo.Checked {
			return "✅ " + text
		}
		return "☐ " + text
	case notion.Code:
		return "```" + b.Code.Language + "\n" + text + "\n```"
	}
	return ""
}
