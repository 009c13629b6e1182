// template.go renders the markdown document written for each script.

package script

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var docTemplate = template.Must(template.New("script").Parse(`# YouTube Shorts Script

## Metadata
- **Keyword**: {{.Keyword}}
- **Created**: {{.Created}}
- **Length**: about {{.Length}} characters

---

## Script

{{.Content}}

---

## Production Guidelines

### Shorts format
- **Duration**: 15-60 seconds (30 or less works best)
- **Aspect ratio**: 9:16 (vertical)
- **Resolution**: 1080x1920 or higher
- **First 3 seconds**: open with a strong hook

### Shooting and editing
- Keep cuts and transitions fast to hold attention
- Add captions for accessibility
- Use trending music or sound effects
- End with a clear call to action

### Measuring results
- Track views, likes, comments and shares
- Review audience retention
- Check subscriber conversion

---

*This script was generated automatically; review and edit it before use.*
`))

// render builds the file: front matter then the markdown document.
func render(keyword, content string, now time.Time) ([]byte, error) {
	length := utf8.RuneCountInString(content)
	meta, err := yaml.Marshal(Meta{
		Keyword:   keyword,
		CreatedAt: now.Format(time.RFC3339),
		Length:    length,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	err = docTemplate.Execute(&b, struct {
		Keyword, Created, Content string
		Length                    int
	}{
		Keyword: keyword,
		Created: now.Format("2006-01-02 15:04:05"),
		Content: content,
		Length:  length,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering script: %w", err)
	}
	return b.Bytes(), nil
}
