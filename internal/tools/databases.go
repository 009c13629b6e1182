// databases.go implements the database tools.

package tools

import (
	"context"
	"fmt"

	"github.com/jpl-au/notionmcp/internal/convert"
	"github.com/jpl-au/notionmcp/internal/log"
	"github.com/jpl-au/notionmcp/internal/notion"
	"github.com/jpl-au/notionmcp/internal/service"
)

// QueryDatabase implements query_database.
func (s *Service) QueryDatabase(ctx context.Context, args service.QueryArgs) service.Result {
	l := s.event(service.OpQueryDatabase, "query").Target(args.DatabaseID).
		Detail("filter", len(args.Filter) > 0).
		Detail("sorts", len(args.Sorts))
	text, err := s.queryDatabase(ctx, args, l)
	return s.finish(service.OpQueryDatabase, l, text, err)
}

func (s *Service) queryDatabase(ctx context.Context, args service.QueryArgs, l *log.Builder) (string, error) {
	id, err := requireID("database_id", args.DatabaseID)
	if err != nil {
		return "", err
	}

	var req notion.QueryRequest
	if len(args.Filter) > 0 {
		req.Filter = args.Filter
	}
	if len(args.Sorts) > 0 {
		req.Sorts = args.Sorts
	}

	recs, err := s.api.QueryDatabase(ctx, id, req)
	if err != nil {
		return "", err
	}

	rows := make([]service.Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, service.Row{
			ID:         rec.ID,
			Title:      convert.Title(rec),
			URL:        rec.URL,
			Properties: rec.Properties,
		})
	}
	l.Detail("count", len(rows))
	return service.Listing("Database query results", rows, len(rows))
}

// CreateDatabaseEntry implements create_database_entry.
func (s *Service) CreateDatabaseEntry(ctx context.Context, args service.EntryArgs) service.Result {
	l := s.event(service.OpCreateEntry, "create").Target(args.DatabaseID).
		Detail("properties", len(args.Properties))
	text, err := s.createEntry(ctx, args, l)
	return s.finish(service.OpCreateEntry, l, text, err)
}

func (s *Service) createEntry(ctx context.Context, args service.EntryArgs, l *log.Builder) (string, error) {
	id, err := requireID("database_id", args.DatabaseID)
	if err != nil {
		return "", err
	}
	if args.Properties == nil {
		return "", missing("properties")
	}

	rec, err := s.api.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseID: id},
		Properties: args.Properties,
	})
	if err != nil {
		return "", err
	}
	l.Detail("page_id", rec.ID)
	return fmt.Sprintf("Database entry created successfully!\nID: %s\nURL: %s", rec.ID, rec.URL), nil
}
