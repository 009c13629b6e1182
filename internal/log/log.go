// Package log records an audit trail of tool calls and CLI commands in a
// sqlite database under the XDG state directory.
//
// Entries are built with a fluent API and written once the operation ends:
//
//	l := log.Event("tools:get_page", "read").Origin("mcp").Target(pageID)
//	rec, err := api.RetrievePage(ctx, pageID)
//	l.Write(err)
//
// Sources use "{area}:{name}", for example "tools:search_notion",
// "script:create" or "core:config". Logging is best-effort: an audit log
// that cannot be opened or written never fails the operation itself.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Origins of an entry.
const (
	OriginCLI = "cli"
	OriginMCP = "mcp"
)

// Entry is a single audit record.
type Entry struct {
	Source string // e.g. "tools:create_page"
	Origin string // "cli" or "mcp"
	Action string // read, search, create, update, query, delete, ...
	Target string // page, database or file the call addressed

	Start int64 // unix milliseconds when Event was called
	End   int64 // unix milliseconds when Write was called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder accumulates an Entry. Create one with Event and finish with Write.
type Builder struct {
	entry Entry
}

// Event starts an entry for the given source and action.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Origin records whether the call came from the CLI or an MCP client.
func (b *Builder) Origin(origin string) *Builder {
	b.entry.Origin = origin
	return b
}

// Target records the id or file name the operation addressed.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Detail adds an operation-specific key/value (query, counts, flags).
// Never pass credentials or document bodies.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write completes the entry; err decides success.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call more than once.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetIntegration tags later entries with an identifier derived from the API
// token. Only a short hash is stored.
func SetIntegration(token string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil && token != "" {
		global.integration = hash(token)
	}
}

// Log writes an entry. It is a no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
