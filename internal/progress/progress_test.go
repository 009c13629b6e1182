package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestSpinner_NotTTY(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Fetching page", false)
	s.Start()
	s.Stop()
	assert.Empty(t, buf.String())
}

func TestSpinner_TTY(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Fetching page", true)
	s.Start()
	s.Start() // second start is ignored
	s.Stop()
	s.Stop() // second stop is ignored

	out := buf.String()
	assert.Contains(t, out, "⠋ Fetching page...")
	assert.True(t, strings.HasSuffix(out, "\r"), "line is cleared on stop")
}
