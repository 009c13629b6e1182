// resources.go implements MCP resources: the embedded guide pages and the
// markdown rendering of a Notion page.
//
// Resource URIs:
//
//	notionmcp://guide            main guide
//	notionmcp://guide/{topic}    guide topic (tools, markdown, scripts, config)
//	notionmcp://pages/{page_id}  page rendered as markdown

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/guide"
	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/log"
	"github.com/jpl-au/notionmcp/internal/service"
)

const (
	guideURI     = "notionmcp://guide"
	guidePrefix  = "notionmcp://guide/"
	pagePrefix   = "notionmcp://pages/"
	markdownMIME = "text/markdown"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrUnknownTopic indicates a guide topic that does not exist.
	ErrUnknownTopic = errors.New("unknown guide topic")
)

type resources struct {
	extCtx extension.Context
}

func registerResources(s *server.MCPServer, r *resources) {
	s.AddResource(
		mcp.NewResource(guideURI, "Guide",
			mcp.WithResourceDescription("notionmcp usage guide"),
			mcp.WithMIMEType(markdownMIME),
		),
		r.readGuide,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(guidePrefix+"{topic}", "Guide Topic",
			mcp.WithTemplateDescription("Guide page for a topic: tools, markdown, scripts or config"),
			mcp.WithTemplateMIMEType(markdownMIME),
		),
		r.readGuide,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(pagePrefix+"{page_id}", "Notion Page",
			mcp.WithTemplateDescription("A Notion page rendered as markdown"),
			mcp.WithTemplateMIMEType(markdownMIME),
		),
		r.readPage,
	)
}

func (r *resources) readGuide(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	topic, err := guideTopic(uri)
	if err != nil {
		return nil, err
	}

	content, err := guide.Get(topic)
	log.Event("mcp:guide", "read").Origin(log.OriginMCP).Target(topic).Write(err)
	if err != nil {
		topics, _ := guide.List()
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTopic, topic, strings.Join(topics, ", "))
	}
	return text(uri, content), nil
}

func (r *resources) readPage(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.TrimPrefix(uri, pagePrefix)
	if id == uri || id == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	svc := r.extCtx.Tools()
	if svc == nil {
		return nil, config.ErrNoToken
	}
	res := svc.PageContent(ctx, service.PageArgs{PageID: id})
	if res.Failed() {
		return nil, res.Err
	}
	return text(uri, res.Text), nil
}

// guideTopic extracts the topic from a guide URI; the bare URI is the
// main page.
func guideTopic(uri string) (string, error) {
	if uri == guideURI {
		return "", nil
	}
	topic, ok := strings.CutPrefix(uri, guidePrefix)
	if !ok || topic == "" || strings.Contains(topic, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return topic, nil
}

func text(uri, content string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: markdownMIME,
			Text:     content,
		},
	}
}
