package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	info := Get("2022-06-28", []string{"core", "page"})

	out := info.String()
	assert.Contains(t, out, "Notion API:   2022-06-28\n")
	assert.Contains(t, out, "Extensions:   core, page\n")

	out = Get("", nil).String()
	assert.NotContains(t, out, "Notion API:")
	assert.NotContains(t, out, "Extensions:")
}
