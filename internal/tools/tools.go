// Package tools implements the document tools over the Notion API. Each
// tool builds the API request, converts the response with internal/convert,
// and formats a text result. Failures never escape as Go errors; they are
// returned as formatted results.
package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpl-au/notionmcp/internal/convert"
	"github.com/jpl-au/notionmcp/internal/log"
	"github.com/jpl-au/notionmcp/internal/notion"
	"github.com/jpl-au/notionmcp/internal/service"
)

// Argument errors, reported before any API call.
var (
	ErrMissingArgument   = errors.New("missing required argument")
	ErrInvalidFilterType = errors.New("filter_type must be \"page\" or \"database\"")
)

// Service implements service.Service.
type Service struct {
	api     notion.API
	decoder convert.Decoder
	origin  string
}

var _ service.Service = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithOrigin sets the origin recorded in the audit log ("cli" or "mcp").
func WithOrigin(origin string) Option {
	return func(s *Service) { s.origin = origin }
}

// New returns a Service backed by api.
func New(api notion.API, opts ...Option) *Service {
	s := &Service{
		api:     api,
		decoder: convert.NewDecoder(api),
		origin:  log.OriginCLI,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// event starts an audit entry for op.
func (s *Service) event(op service.Operation, action string) *log.Builder {
	return log.Event("tools:"+op.Tool, action).Origin(s.origin)
}

// finish records the outcome and converts it to a Result.
func (s *Service) finish(op service.Operation, l *log.Builder, text string, err error) service.Result {
	l.Write(err)
	if err != nil {
		slog.Error(op.Tool+" failed", "error", err)
		return service.Failure(op, err)
	}
	return service.Success(text)
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingArgument, name)
}

// requireID normalises an id argument and rejects empty values.
func requireID(name, raw string) (string, error) {
	id := notion.NormalizeID(raw)
	if id == "" {
		return "", missing(name)
	}
	return id, nil
}
