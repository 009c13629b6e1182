// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> tools service -> HTTP client -> Notion API.
//
// The Notion API is replaced by fakeNotion, an httptest server speaking the
// subset of the REST API the client uses. Each test gets its own HOME and
// XDG directories so config, scripts and the audit log never leak between
// tests or into the developer's machine.

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the notionmcp binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "notionmcp-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "notionmcp"
		if os.PathSeparator == '\\' {
			binaryName = "notionmcp.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// Fixture ids. testPageID is undashed, the way it appears in page URLs.
const (
	testPageID     = "0123456789abcdef0123456789abcdef"
	testPageDashed = "01234567-89ab-cdef-0123-456789abcdef"
	testDBDashed   = "fedcba98-7654-3210-fedc-ba9876543210"
	testToken      = "secret_test_token_1234"
)

// fakeNotion records requests made against it.
type fakeNotion struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]map[string]any
}

func (f *fakeNotion) record(r *http.Request) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	if f.bodies == nil {
		f.bodies = make(map[string][]map[string]any)
	}
	f.bodies[key] = append(f.bodies[key], body)
	return body
}

// Bodies returns the decoded request bodies sent to method and path.
func (f *fakeNotion) Bodies(key string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func pageJSON(id, title string) map[string]any {
	return map[string]any{
		"object":           "page",
		"id":               id,
		"url":              "https://www.notion.so/" + strings.ReplaceAll(id, "-", ""),
		"created_time":     "2024-01-01T00:00:00.000Z",
		"last_edited_time": "2024-01-02T00:00:00.000Z",
		"properties": map[string]any{
			"Name": map[string]any{
				"id":    "title",
				"type":  "title",
				"title": []any{map[string]any{"type": "text", "plain_text": title}},
			},
		},
	}
}

func textBlock(kind, text string) map[string]any {
	return map[string]any{
		"object": "block",
		"type":   kind,
		kind: map[string]any{
			"rich_text": []any{map[string]any{"type": "text", "plain_text": text}},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func list(results ...any) map[string]any {
	if results == nil {
		results = []any{}
	}
	return map[string]any{"object": "list", "results": results, "has_more": false}
}

func (f *fakeNotion) handler() http.Handler {
	mux := http.NewServeMux()
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, map[string]any{
					"object": "error", "status": 401, "code": "unauthorized", "message": "API token is invalid.",
				})
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("POST /search", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, list(pageJSON(testPageDashed, "Roadmap")))
	}))
	mux.HandleFunc("GET /pages/{id}", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.PathValue("id") != testPageDashed {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"object": "error", "status": 404, "code": "object_not_found",
				"message": "Could not find page with ID: " + r.PathValue("id"),
			})
			return
		}
		writeJSON(w, http.StatusOK, pageJSON(testPageDashed, "Roadmap"))
	}))
	mux.HandleFunc("PATCH /pages/{id}", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, pageJSON(r.PathValue("id"), "Renamed"))
	}))
	mux.HandleFunc("GET /blocks/{id}/children", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, list(
			textBlock("heading_1", "Plan"),
			textBlock("paragraph", "Ship it."),
			textBlock("bulleted_list_item", "One"),
		))
	}))
	mux.HandleFunc("PATCH /blocks/{id}/children", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, list())
	}))
	mux.HandleFunc("POST /pages", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, pageJSON("11111111-2222-3333-4444-555555555555", "New"))
	}))
	mux.HandleFunc("POST /databases/{id}/query", auth(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, list(pageJSON("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", "Task A")))
	}))
	return mux
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
	api    *fakeNotion
	env    []string
}

// newTestEnv creates isolated HOME/XDG directories, a fake Notion API and
// a token pointing at it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	api := &fakeNotion{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	return &testEnv{
		t:      t,
		dir:    dir,
		binary: binary,
		api:    api,
		env: []string{
			"HOME=" + dir,
			"XDG_CONFIG_HOME=" + filepath.Join(dir, "config"),
			"XDG_DATA_HOME=" + filepath.Join(dir, "data"),
			"XDG_STATE_HOME=" + filepath.Join(dir, "state"),
			"NOTION_TOKEN=" + testToken,
			"NOTION_BASE_URL=" + srv.URL,
			"NOTION_VERSION=",
			"NOTION_SCRIPTS_DIR=",
			"LOG_LEVEL=",
		},
	}
}

// without returns a copy of the env with key unset.
func (e *testEnv) without(key string) *testEnv {
	c := *e
	c.env = append(append([]string(nil), e.env...), key+"=")
	return &c
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), e.env...)
	return cmd
}

// run executes notionmcp with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("notionmcp %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes notionmcp and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdout executes notionmcp and returns stdout only, for JSON output.
func (e *testEnv) runStdout(args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stderr = nil
	out, err := cmd.Output()
	return string(out), err
}

// runStdin executes notionmcp with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("notionmcp %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// decodeJSON unmarshals a single JSON document from output.
func (e *testEnv) decodeJSON(output string, v any) {
	e.t.Helper()
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), v); err != nil {
		e.t.Fatalf("invalid JSON %q: %v", output, err)
	}
}
