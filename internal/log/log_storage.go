// log_storage.go persists audit entries in sqlite and reads them back for
// the audit command.

package log

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// ErrNotOpen is returned by queries when the audit log is unavailable.
var ErrNotOpen = errors.New("audit log not open")

// Logger writes audit entries to a sqlite database.
type Logger struct {
	db          *sql.DB
	integration string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO calls (start, end, integration, source, origin, action, target,
		                   success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.integration, e.Source, nilIfEmpty(e.Origin), e.Action,
		nilIfEmpty(e.Target), success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notionmcp: audit log write failed: %v\n", err)
	}
}

// Record is a stored entry as returned by Recent.
type Record struct {
	ID          int64          `json:"id"`
	Time        time.Time      `json:"time"`
	Duration    time.Duration  `json:"duration_ns"`
	Integration string         `json:"integration,omitempty"`
	Source      string         `json:"source"`
	Origin      string         `json:"origin,omitempty"`
	Action      string         `json:"action"`
	Target      string         `json:"target,omitempty"`
	Success     bool           `json:"success"`
	Error       string         `json:"error,omitempty"`
	Detail      map[string]any `json:"detail,omitempty"`
}

// Query filters Recent.
type Query struct {
	Limit  int    // default 20
	Source string // exact source match when set
}

// Recent returns the newest entries first.
func Recent(ctx context.Context, q Query) ([]Record, error) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return nil, ErrNotOpen
	}

	if q.Limit <= 0 {
		q.Limit = 20
	}

	query := `SELECT id, start, end, integration, source, origin, action, target, success, error, detail
		FROM calls`
	var args []any
	if q.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, q.Source)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, q.Limit)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r                              Record
			start, end                     int64
			origin, target, errMsg, detail sql.NullString
			success                        int
		)
		if err := rows.Scan(&r.ID, &start, &end, &r.Integration, &r.Source, &origin,
			&r.Action, &target, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		r.Time = time.UnixMilli(start)
		r.Duration = time.Duration(end-start) * time.Millisecond
		r.Origin = origin.String
		r.Target = target.String
		r.Success = success == 1
		r.Error = errMsg.String
		if detail.Valid {
			_ = json.Unmarshal([]byte(detail.String), &r.Detail)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// dbPathFunc returns the database path. Tests override it.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	return filepath.Join(xdg.StateHome, "notionmcp", "audit.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the audit database.
func DBPath() string {
	return dbPath()
}

// hash derives a 16 hex character identifier from s.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS calls (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			start       INTEGER NOT NULL,
			end         INTEGER NOT NULL,
			integration TEXT NOT NULL,
			source      TEXT NOT NULL,
			origin      TEXT,
			action      TEXT NOT NULL,
			target      TEXT,
			success     INTEGER NOT NULL,
			error       TEXT,
			detail      TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_calls_start ON calls(start);
		CREATE INDEX IF NOT EXISTS idx_calls_source ON calls(source);
	`)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
