package notion

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// NormalizeID returns the canonical dashed form of a Notion id. It accepts
// dashed or undashed ids and page URLs such as
// https://www.notion.so/workspace/My-Page-0123456789abcdef0123456789abcdef.
// Input that does not contain an id is returned trimmed but otherwise as is.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if id, err := uuid.Parse(s); err == nil {
		return id.String()
	}

	candidate := s
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		candidate = strings.TrimSuffix(u.Path, "/")
		if i := strings.LastIndex(candidate, "/"); i >= 0 {
			candidate = candidate[i+1:]
		}
	}
	// Page slugs end in the undashed id: Title-Words-<32 hex>.
	if len(candidate) >= 32 {
		if id, err := uuid.Parse(candidate[len(candidate)-32:]); err == nil {
			return id.String()
		}
	}
	return s
}
