package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Operation names a tool and the activity used in its failure message.
type Operation struct {
	Tool     string
	Activity string
}

// The tool operations.
var (
	OpSearch        = Operation{"search_notion", "searching"}
	OpPage          = Operation{"get_page", "retrieving the page"}
	OpPageContent   = Operation{"get_page_content", "retrieving page content"}
	OpCreatePage    = Operation{"create_page", "creating the page"}
	OpUpdatePage    = Operation{"update_page", "updating the page"}
	OpQueryDatabase = Operation{"query_database", "querying the database"}
	OpCreateEntry   = Operation{"create_database_entry", "creating the database entry"}
)

// Result is the outcome of a tool call. Text is always set: the success
// summary, or the formatted failure when Err is non-nil.
type Result struct {
	Text string
	Err  error
}

// Failed reports whether the call failed.
func (r Result) Failed() bool { return r.Err != nil }

// Success returns a successful result.
func Success(text string) Result {
	return Result{Text: text}
}

// Failure returns a failed result whose text is the user-facing message for
// err. This is the only place failure text is produced.
func Failure(op Operation, err error) Result {
	return Result{
		Text: fmt.Sprintf("An error occurred while %s: %v", op.Activity, err),
		Err:  err,
	}
}

// JSON renders v with two-space indentation, leaving non-ASCII and HTML
// characters unescaped.
func JSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Listing formats a counted JSON listing such as
// "Search results (2):\n[...]".
func Listing(label string, items any, n int) (string, error) {
	body, err := JSON(items)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%d):\n%s", label, n, body), nil
}
