// Package convert translates between Notion records and markdown: page and
// database titles, flattened rich text, markdown lines to blocks, and block
// trees back to markdown.
package convert

import (
	"strings"

	"github.com/jpl-au/notionmcp/internal/notion"
)

// Untitled is returned when a record has no usable title.
const Untitled = "(untitled)"

// titleStrategy extracts a title from one record shape.
type titleStrategy func(notion.Record) (string, bool)

// titleStrategies are tried in order; the first non-empty title wins.
var titleStrategies = []titleStrategy{pageTitle, databaseTitle}

// Title returns the human-readable title of a page or database.
func Title(rec notion.Record) string {
	for _, s := range titleStrategies {
		if t, ok := s(rec); ok {
			return t
		}
	}
	return Untitled
}

// pageTitle reads the first title-typed property.
func pageTitle(rec notion.Record) (string, bool) {
	spans, ok := rec.Properties.TitleSpans()
	if !ok {
		return "", false
	}
	t := PlainText(spans)
	return t, t != ""
}

// databaseTitle reads the top-level title array.
func databaseTitle(rec notion.Record) (string, bool) {
	t := PlainText(rec.Title)
	return t, t != ""
}

// PlainText concatenates the plain text of each span in order.
func PlainText(spans []notion.RichText) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.PlainText)
	}
	return b.String()
}

// linePrefixes maps markdown line prefixes to block kinds. Longer prefixes
// come first so "### " is not read as "# ".
var linePrefixes = []struct {
	prefix string
	kind   notion.BlockType
}{
	{"### ", notion.Heading3},
	{"## ", notion.Heading2},
	{"# ", notion.Heading1},
	{"- ", notion.BulletedListItem},
}

// Encode turns markdown into blocks, one block per non-blank line. Only
// headings, bullets and paragraphs are produced.
func Encode(markdown string) []notion.Block {
	var blocks []notion.Block
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, encodeLine(line))
	}
	return blocks
}

func encodeLine(line string) notion.Block {
	for _, p := range linePrefixes {
		if rest, ok := strings.CutPrefix(line, p.prefix); ok {
			return notion.NewTextBlock(p.kind, rest)
		}
	}
	return notion.NewTextBlock(notion.Paragraph, line)
}
