package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/genui/internal/errors"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{"empty", "", 4, nil},
		{"exact", "abcdefgh", 4, []string{"abcd", "efgh"}},
		{"remainder", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"default size", strings.Repeat("x", 20), 0, []string{strings.Repeat("x", 16), "xxxx"}},
		{"keeps runes whole", "aé b", 2, []string{"aé", " b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.text, tt.size))
		})
	}
}

func TestChunk_Reassembles(t *testing.T) {
	doc := `{"id":"text","content":"héllo wörld ✓"}`
	for size := 1; size <= len(doc); size++ {
		assert.Equal(t, doc, strings.Join(Chunk(doc, size), ""), "size %d", size)
	}
}

func TestReadChunks(t *testing.T) {
	chunks, err := ReadChunks(strings.NewReader("abcdef"), 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd", "ef"}, chunks)
}

func TestPlay(t *testing.T) {
	var got []string
	err := Play(context.Background(), Deltas([]string{"a", "b", "c"}), 0, func(s Step) error {
		got = append(got, s.Delta)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestPlay_StopsOnError(t *testing.T) {
	calls := 0
	err := Play(context.Background(), Deltas([]string{"a", "b"}), 0, func(Step) error {
		calls++
		return fmt.Errorf("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}

func TestPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Play(ctx, Deltas([]string{"a", "b", "c"}), time.Hour, func(Step) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestParseScript(t *testing.T) {
	data := []byte(`{
		// Scenario E
		"description": "fill and submit",
		"steps": [
			"{\"id\":\"form\",\"children\":[",
			/* the rest */ {"delta": "{\"id\":\"button\",\"queryId\":\"submit\",\"query\":\"Go\"}]}"},
			{"submit": {"button": "submit", "values": {"q": "hello"}}},
			{"reset": true},
		],
	}`)

	script, err := ParseScript(data)
	require.NoError(t, err)
	assert.Equal(t, "fill and submit", script.Description)
	require.Len(t, script.Steps, 4)
	assert.Equal(t, `{"id":"form","children":[`, script.Steps[0].Delta)
	assert.Equal(t, `{"id":"button","queryId":"submit","query":"Go"}]}`, script.Steps[1].Delta)
	require.NotNil(t, script.Steps[2].Submit)
	assert.Equal(t, "submit", script.Steps[2].Submit.Button)
	assert.Equal(t, map[string]string{"q": "hello"}, script.Steps[2].Submit.Values)
	assert.Empty(t, script.Steps[2].Submit.Form)
	assert.True(t, script.Steps[3].Reset)
}

func TestParseScript_BareArray(t *testing.T) {
	script, err := ParseScript([]byte(`["a", "b", // trailing
	]`))
	require.NoError(t, err)
	assert.Equal(t, Deltas([]string{"a", "b"}), script.Steps)
}

func TestParseScript_CommentMarkersInsideStrings(t *testing.T) {
	script, err := ParseScript([]byte(`["{\"id\":\"text\",\"content\":\"see // this\"}"]`))
	require.NoError(t, err)
	require.Len(t, script.Steps, 1)
	assert.Equal(t, `{"id":"text","content":"see // this"}`, script.Steps[0].Delta)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{steps`},
		{"number step", `[1]`},
		{"empty object step", `[{}]`},
		{"two kinds in one step", `[{"delta":"x","reset":true}]`},
		{"submit without button", `[{"submit":{"values":{}}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrStream))
		})
	}
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`["x"]`), 0644))

	script, err := ReadScript(path)
	require.NoError(t, err)
	assert.Len(t, script.Steps, 1)

	_, err = ReadScript(filepath.Join(dir, "missing.jsonc"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStream))
}
