package notion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	const want = "01234567-89ab-cdef-0123-456789abcdef"

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dashed", want, want},
		{"undashed", "0123456789abcdef0123456789abcdef", want},
		{"upper case", "0123456789ABCDEF0123456789ABCDEF", want},
		{"padded", "  " + want + "\n", want},
		{"page url", "https://www.notion.so/team/My-Page-0123456789abcdef0123456789abcdef", want},
		{"page url with query", "https://www.notion.so/0123456789abcdef0123456789abcdef?pvs=4", want},
		{"opaque id kept", "test-page-id", "test-page-id"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeID(tc.input))
		})
	}
}

func TestProperties(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var p Properties
		assert.False(t, p.Present())
		assert.Equal(t, 0, p.Len())
		b, err := p.MarshalJSON()
		assert.NoError(t, err)
		assert.Equal(t, "{}", string(b))
		_, ok := p.TitleSpans()
		assert.False(t, ok)
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		var p Properties
		in := `{"Zeta":{"type":"number","number":1},"Alpha":{"type":"title","title":[{"plain_text":"A"},{"plain_text":"B"}]}}`
		assert.NoError(t, p.UnmarshalJSON([]byte(in)))
		assert.True(t, p.Present())
		assert.Equal(t, 2, p.Len())

		out, err := p.MarshalJSON()
		assert.NoError(t, err)
		assert.JSONEq(t, in, string(out))
		assert.Less(t, strings.Index(string(out), "Zeta"), strings.Index(string(out), "Alpha"))

		spans, ok := p.TitleSpans()
		assert.True(t, ok)
		assert.Len(t, spans, 2)
	})

	t.Run("first title property wins", func(t *testing.T) {
		p := NewProperties(
			Property{Name: "First", Value: map[string]any{"type": "title", "title": []any{}}},
			Property{Name: "Second", Value: map[string]any{"type": "title", "title": []map[string]any{{"plain_text": "ignored"}}}},
		)
		spans, ok := p.TitleSpans()
		assert.True(t, ok)
		assert.Empty(t, spans)
	})
}
