package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/genui/internal/layout"
)

func TestInstructions_CoverEveryKind(t *testing.T) {
	for _, kind := range layout.Kinds() {
		in, ok := Instructions[kind]
		require.True(t, ok, "missing instruction for %s", kind)
		assert.NotEmpty(t, in.Usage)
		require.NotEmpty(t, in.Fields)
		assert.Equal(t, "id", in.Fields[0].Field)
	}
}

func TestGenerate(t *testing.T) {
	out := Generate("")

	assert.True(t, strings.HasPrefix(out, "You emit JSON"))
	for _, kind := range layout.Kinds() {
		assert.Contains(t, out, "- **"+string(kind)+"**: ")
	}
	assert.Contains(t, out, "  - `queryId`: ")
	assert.Contains(t, out, "```json\n{\n  \"id\": \"container\",")
}

func TestGenerate_ExampleIsValid(t *testing.T) {
	out := Generate("")
	start := strings.Index(out, "```json\n") + len("```json\n")
	end := strings.Index(out[start:], "\n```")
	require.Greater(t, end, 0)

	doc, err := layout.Materialize(out[start : start+end])
	require.NoError(t, err)
	assert.Equal(t, Example, doc)
}

func TestGenerate_Preamble(t *testing.T) {
	out := Generate("  You are a booking assistant.\n")
	assert.True(t, strings.HasPrefix(out, "You are a booking assistant.\n\nYou emit JSON"))
}
