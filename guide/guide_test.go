package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	main, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, main, "# notionmcp")

	same, err := Get("guide")
	require.NoError(t, err)
	assert.Equal(t, main, same)

	_, err = Get("missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	topics, err := List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"config", "markdown", "scripts", "tools"}, topics)

	for _, topic := range topics {
		content, err := Get(topic)
		require.NoError(t, err, topic)
		assert.NotEmpty(t, content, topic)
	}
}
