// envelope.go wraps script operations in the JSON envelopes returned by the
// script tools: {"success": true, ...} or {"success": false, "error": ...}.

package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Envelope is the JSON result of a script operation.
type Envelope struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message,omitempty"`
	Error     string  `json:"error,omitempty"`
	FilePath  string  `json:"file_path,omitempty"`
	Filename  string  `json:"filename,omitempty"`
	Keyword   string  `json:"keyword,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	Content   *string `json:"content,omitempty"`
	Files     *[]File `json:"files,omitempty"`
}

// String renders the envelope as indented JSON.
func (e Envelope) String() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Sprintf(`{"success": false, "error": %q}`, err.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func failed(activity string, err error) Envelope {
	return Envelope{Error: fmt.Sprintf("An error occurred while %s: %v", activity, err)}
}

// CreateEnvelope creates a script and reports the outcome.
func (s *Store) CreateEnvelope(keyword, content string) Envelope {
	f, err := s.Create(keyword, content)
	if err != nil {
		return failed("creating the script file", err)
	}
	return Envelope{
		Success:   true,
		Message:   "Script file created successfully.",
		FilePath:  f.Path,
		Filename:  f.Name,
		Keyword:   keyword,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}

// ListEnvelope lists scripts and reports the outcome.
func (s *Store) ListEnvelope() Envelope {
	files, err := s.List()
	if err != nil {
		return failed("listing script files", err)
	}
	msg := fmt.Sprintf("%d script file(s) found.", len(files))
	if len(files) == 0 {
		msg = "No script files have been created yet."
	}
	return Envelope{Success: true, Message: msg, Files: &files}
}

// ReadEnvelope reads a script and reports the outcome.
func (s *Store) ReadEnvelope(name string) Envelope {
	content, err := s.Read(name)
	if err != nil {
		return failed("reading the script file", err)
	}
	return Envelope{Success: true, Filename: name, Content: &content}
}

// DeleteEnvelope deletes a script and reports the outcome.
func (s *Store) DeleteEnvelope(name string) Envelope {
	if err := s.Delete(name); err != nil {
		return failed("deleting the script file", err)
	}
	return Envelope{Success: true, Message: "Script file deleted: " + name}
}
