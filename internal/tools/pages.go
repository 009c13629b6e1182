// pages.go implements search and the page tools.

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/notionmcp/internal/convert"
	"github.com/jpl-au/notionmcp/internal/log"
	"github.com/jpl-au/notionmcp/internal/notion"
	"github.com/jpl-au/notionmcp/internal/service"
)

// Search implements search_notion.
func (s *Service) Search(ctx context.Context, args service.SearchArgs) service.Result {
	l := s.event(service.OpSearch, "search").Detail("query", args.Query)
	if args.FilterType != "" {
		l.Detail("filter_type", args.FilterType)
	}
	text, err := s.search(ctx, args, l)
	return s.finish(service.OpSearch, l, text, err)
}

func (s *Service) search(ctx context.Context, args service.SearchArgs, l *log.Builder) (string, error) {
	req := notion.SearchRequest{Query: args.Query}
	if ft := strings.TrimSpace(args.FilterType); ft != "" {
		if ft != notion.ObjectPage && ft != notion.ObjectDatabase {
			return "", fmt.Errorf("%w, got %q", ErrInvalidFilterType, ft)
		}
		req.Filter = &notion.SearchFilter{Value: ft, Property: "object"}
	}

	recs, err := s.api.Search(ctx, req)
	if err != nil {
		return "", err
	}

	items := make([]service.SearchItem, 0, len(recs))
	for _, rec := range recs {
		if rec.Object != notion.ObjectPage && rec.Object != notion.ObjectDatabase {
			continue
		}
		items = append(items, service.SearchItem{
			ID:    rec.ID,
			Type:  rec.Object,
			Title: convert.Title(rec),
			URL:   rec.URL,
		})
	}
	l.Detail("count", len(items))
	return service.Listing("Search results", items, len(items))
}

// Page implements get_page.
func (s *Service) Page(ctx context.Context, args service.PageArgs) service.Result {
	l := s.event(service.OpPage, "read").Target(args.PageID)
	text, err := s.page(ctx, args)
	return s.finish(service.OpPage, l, text, err)
}

func (s *Service) page(ctx context.Context, args service.PageArgs) (string, error) {
	id, err := requireID("page_id", args.PageID)
	if err != nil {
		return "", err
	}
	rec, err := s.api.RetrievePage(ctx, id)
	if err != nil {
		return "", err
	}
	body, err := service.JSON(service.PageInfo{
		ID:             rec.ID,
		Title:          convert.Title(rec),
		URL:            rec.URL,
		CreatedTime:    rec.CreatedTime,
		LastEditedTime: rec.LastEditedTime,
		Properties:     rec.Properties,
	})
	if err != nil {
		return "", err
	}
	return "Page info:\n" + body, nil
}

// PageContent implements get_page_content.
func (s *Service) PageContent(ctx context.Context, args service.PageArgs) service.Result {
	l := s.event(service.OpPageContent, "read").Target(args.PageID)
	title, body, err := s.markdown(ctx, args.PageID)
	if err == nil {
		l.Detail("bytes", len(body))
	}
	return s.finish(service.OpPageContent, l, "# "+title+"\n\n"+body, err)
}

// Markdown returns a page's title and rendered body.
func (s *Service) Markdown(ctx context.Context, pageID string) (string, string, error) {
	return s.markdown(ctx, pageID)
}

func (s *Service) markdown(ctx context.Context, pageID string) (string, string, error) {
	id, err := requireID("page_id", pageID)
	if err != nil {
		return "", "", err
	}
	rec, err := s.api.RetrievePage(ctx, id)
	if err != nil {
		return "", "", err
	}
	blocks, err := s.api.ListBlockChildren(ctx, id)
	if err != nil {
		return "", "", err
	}
	body, err := s.decoder.Decode(ctx, blocks)
	if err != nil {
		return "", "", err
	}
	return convert.Title(rec), body, nil
}

// CreatePage implements create_page.
func (s *Service) CreatePage(ctx context.Context, args service.CreatePageArgs) service.Result {
	l := s.event(service.OpCreatePage, "create").Target(args.ParentID)
	text, err := s.createPage(ctx, args, l)
	return s.finish(service.OpCreatePage, l, text, err)
}

func (s *Service) createPage(ctx context.Context, args service.CreatePageArgs, l *log.Builder) (string, error) {
	parent, err := requireID("parent_id", args.ParentID)
	if err != nil {
		return "", err
	}
	if args.Title == "" {
		return "", missing("title")
	}

	rec, err := s.api.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{PageID: parent},
		Properties: notion.TitleProperty(args.Title),
	})
	if err != nil {
		return "", err
	}
	l.Detail("page_id", rec.ID)

	if blocks := convert.Encode(args.Content); len(blocks) > 0 {
		if err := s.api.AppendBlockChildren(ctx, rec.ID, blocks); err != nil {
			return "", err
		}
		l.Detail("blocks", len(blocks))
	}
	return fmt.Sprintf("Page created successfully!\nID: %s\nURL: %s", rec.ID, rec.URL), nil
}

// UpdatePage implements update_page. Content is appended to the page.
func (s *Service) UpdatePage(ctx context.Context, args service.UpdatePageArgs) service.Result {
	l := s.event(service.OpUpdatePage, "update").Target(args.PageID)
	text, err := s.updatePage(ctx, args, l)
	return s.finish(service.OpUpdatePage, l, text, err)
}

func (s *Service) updatePage(ctx context.Context, args service.UpdatePageArgs, l *log.Builder) (string, error) {
	id, err := requireID("page_id", args.PageID)
	if err != nil {
		return "", err
	}

	if args.Title != nil && *args.Title != "" {
		if _, err := s.api.UpdatePage(ctx, id, notion.TitleProperty(*args.Title)); err != nil {
			return "", err
		}
		l.Detail("title", true)
	}

	if args.Content != nil {
		if blocks := convert.Encode(*args.Content); len(blocks) > 0 {
			if err := s.api.AppendBlockChildren(ctx, id, blocks); err != nil {
				return "", err
			}
			l.Detail("blocks", len(blocks))
		}
	}
	return "Page updated successfully!", nil
}
