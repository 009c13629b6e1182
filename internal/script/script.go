// Package script files short-video scripts as markdown documents in a
// single directory. Each file carries YAML front matter with the keyword
// it was written for. All file access goes through an os.Root so names
// cannot escape the directory.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/frontmatter"

	"github.com/jpl-au/notionmcp/internal/log"
)

// File naming.
const (
	Prefix = "youtube_shorts_"
	Ext    = ".md"

	stampLayout = "20060102_150405"
	maxKeyword  = 50
)

var (
	// ErrNotFound is returned when a named script does not exist.
	ErrNotFound = errors.New("script not found")
	// ErrInvalidName is returned for names that are not a plain file name.
	ErrInvalidName = errors.New("invalid script name")
	// ErrEmptyContent is returned when creating a script with no body.
	ErrEmptyContent = errors.New("script content is empty")
)

// Meta is the front matter written at the top of every script.
type Meta struct {
	Keyword   string `yaml:"keyword"`
	CreatedAt string `yaml:"created_at"`
	Length    int    `yaml:"length"`
}

// File describes a stored script.
type File struct {
	Name       string    `json:"filename"`
	Path       string    `json:"filepath"`
	Keyword    string    `json:"keyword,omitempty"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Store manages scripts in one directory.
type Store struct {
	dir string
	now func() time.Time
}

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the script directory.
func (s *Store) Dir() string { return s.dir }

// SanitizeKeyword makes a keyword safe for use in a file name.
func SanitizeKeyword(keyword string) string {
	r := strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
		`\`, "_", "|", "_", "?", "_", "*", "_", " ", "_",
	)
	safe := strings.TrimSpace(r.Replace(keyword))
	if utf8.RuneCountInString(safe) > maxKeyword {
		safe = string([]rune(safe)[:maxKeyword])
	}
	if safe == "" {
		return "script"
	}
	return safe
}

// checkName rejects anything other than a bare file name.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Store) root(create bool) (*os.Root, error) {
	if create {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return nil, fmt.Errorf("creating script directory: %w", err)
		}
	}
	r, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, fmt.Errorf("opening script directory: %w", err)
	}
	return r, nil
}

// Create writes a new script for keyword and returns its description.
func (s *Store) Create(keyword, content string) (f File, err error) {
	l := log.Event("script", "create").Target(keyword)
	defer func() { l.Write(err) }()

	if strings.TrimSpace(content) == "" {
		return File{}, ErrEmptyContent
	}

	r, err := s.root(true)
	if err != nil {
		return File{}, err
	}
	defer r.Close()

	now := s.now()
	base := Prefix + SanitizeKeyword(keyword) + "_" + now.Format(stampLayout)
	doc, err := render(keyword, content, now)
	if err != nil {
		return File{}, err
	}

	name, fh, err := createUnique(r, base)
	if err != nil {
		return File{}, err
	}
	if _, err := fh.Write(doc); err != nil {
		fh.Close()
		return File{}, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := fh.Close(); err != nil {
		return File{}, fmt.Errorf("closing %s: %w", name, err)
	}

	l.Detail("file", name).Detail("length", utf8.RuneCountInString(content))
	slog.Info("script created", "file", name, "keyword", keyword)
	return File{
		Name:       name,
		Path:       filepath.Join(s.dir, name),
		Keyword:    keyword,
		Size:       int64(len(doc)),
		CreatedAt:  now,
		ModifiedAt: now,
	}, nil
}

// createUnique opens base+Ext exclusively, adding a counter when two
// scripts for the same keyword land in the same second.
func createUnique(r *os.Root, base string) (string, *os.File, error) {
	for i := 1; i < 100; i++ {
		name := base + Ext
		if i > 1 {
			name = fmt.Sprintf("%s_%d%s", base, i, Ext)
		}
		fh, err := r.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("creating %s: %w", name, err)
		}
		return name, fh, nil
	}
	return "", nil, fmt.Errorf("creating %s: too many scripts with this name", base+Ext)
}

// List returns stored scripts, newest first. A missing directory is empty.
func (s *Store) List() ([]File, error) {
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return []File{}, nil
	}
	r, err := s.root(false)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	entries, err := fs.ReadDir(r.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("listing scripts: %w", err)
	}

	files := []File{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, Prefix) || !strings.HasSuffix(name, Ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			slog.Warn("skipping script", "file", name, "error", err)
			continue
		}
		f := File{
			Name:       name,
			Path:       filepath.Join(s.dir, name),
			Size:       info.Size(),
			CreatedAt:  info.ModTime(),
			ModifiedAt: info.ModTime(),
		}
		if meta, err := readMeta(r, name); err == nil {
			f.Keyword = meta.Keyword
			if t, err := time.Parse(time.RFC3339, meta.CreatedAt); err == nil {
				f.CreatedAt = t
			}
		}
		files = append(files, f)
	}

	slices.SortFunc(files, func(a, b File) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return files, nil
}

func readMeta(r *os.Root, name string) (Meta, error) {
	fh, err := r.Open(name)
	if err != nil {
		return Meta{}, err
	}
	defer fh.Close()

	var meta Meta
	if _, err := frontmatter.Parse(fh, &meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// Read returns the full content of a script, front matter included.
func (s *Store) Read(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r, err := s.root(false)
	if err != nil {
		return "", err
	}
	defer r.Close()

	fh, err := r.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", name, err)
	}
	defer fh.Close()

	data, err := io.ReadAll(fh)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// Body returns a script's content without its front matter.
func (s *Store) Body(name string) (string, Meta, error) {
	content, err := s.Read(name)
	if err != nil {
		return "", Meta{}, err
	}
	var meta Meta
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return content, Meta{}, nil
	}
	return string(bytes.TrimLeft(body, "\n")), meta, nil
}

// Delete removes a script.
func (s *Store) Delete(name string) (err error) {
	l := log.Event("script", "delete").Target(name)
	defer func() { l.Write(err) }()

	if err := checkName(name); err != nil {
		return err
	}
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r, err := s.root(false)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("removing %s: %w", name, err)
	}
	slog.Info("script deleted", "file", name)
	return nil
}
