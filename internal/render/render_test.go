package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/view"
)

func project(t *testing.T, candidate string) view.Node {
	t.Helper()
	doc, err := layout.Materialize(candidate)
	require.NoError(t, err)
	return view.Project(doc)
}

func plain(w *bytes.Buffer, width int) *Renderer {
	return NewRenderer(w, WithColor(false), WithWidth(width))
}

func TestRenderer_Text(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	out := r.Render(project(t, `{"id":"text","content":"hello"}`), nil)
	assert.Equal(t, "hello", strings.TrimRight(out, " "))
}

func TestRenderer_WrapsToWidth(t *testing.T) {
	r := plain(&bytes.Buffer{}, 10)
	out := r.Render(project(t, `{"id":"text","content":"one two three four five"}`), nil)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 10, "line %q", line)
	}
	assert.Greater(t, strings.Count(out, "\n"), 0)
}

func TestRenderer_Form(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	v := project(t, `{"id":"form","children":[{"id":"input","queryId":"q","query":"Name?"},{"id":"button","queryId":"submit","query":""}]}`)

	out := r.Render(v, r.Values(map[string]string{"q": "hello"}))
	assert.Contains(t, out, "Name?")
	assert.Contains(t, out, SymbolField+" hello")
	assert.Contains(t, out, "[ "+view.DefaultAction+" ]")
	assert.Contains(t, out, "╭", "forms are boxed")
}

func TestRenderer_EmptyInputShowsPlaceholder(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	out := r.Render(project(t, `{"id":"input","queryId":"q","query":"Name?"}`), nil)
	assert.Contains(t, out, "Name? "+SymbolField+" _")
}

func TestRenderer_OverlayGetsPaths(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	v := project(t, `{"id":"container","children":[{"id":"text","content":"t"},{"id":"form","children":[{"id":"input","queryId":"q","query":"Q"},{"id":"button","queryId":"b","query":"B"}]}]}`)

	var seen [][]int
	out := r.Render(v, func(path []int, n view.Node, _ int) (string, bool) {
		seen = append(seen, append([]int(nil), path...))
		if n.Kind == layout.KindButton {
			return "<" + n.Prop(view.PropQueryID) + ">", true
		}
		return "", false
	})

	assert.Equal(t, [][]int{{1, 0}, {1, 1}}, seen)
	assert.Contains(t, out, "<b>")
	assert.Contains(t, out, "Q "+SymbolField)
}

func TestRenderer_NestedContainersIndent(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	v := project(t, `{"id":"container","children":[{"id":"text","content":"outer"},{"id":"container","children":[{"id":"text","content":"inner"}]}]}`)

	lines := strings.Split(r.Render(v, nil), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "outer"))
	assert.True(t, strings.HasPrefix(lines[1], "  inner"))
}

func TestRenderer_EmptyContainer(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	assert.Equal(t, "", r.Render(project(t, `{"id":"container","children":[]}`), nil))
}

func TestRenderer_NoColorHasNoEscapes(t *testing.T) {
	r := plain(&bytes.Buffer{}, 40)
	out := r.Render(project(t, `{"id":"button","queryId":"go","query":"Go"}`), nil)
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, "[ Go ]", out)
}

func TestAppender_Present(t *testing.T) {
	var buf bytes.Buffer
	a := NewAppender(&buf, plain(&buf, 20))

	require.NoError(t, a.Present(engine.Output{Version: 1, View: project(t, `{"id":"text","content":"he"}`)}))
	require.NoError(t, a.Present(engine.Output{Version: 2, Optimistic: true, View: project(t, `{"id":"text","content":"hello"}`)}))

	out := buf.String()
	assert.Contains(t, out, "── v1 ")
	assert.Contains(t, out, "── v2 ")
	assert.Less(t, strings.Index(out, "v1"), strings.Index(out, "v2"), "snapshots are appended in order")
	assert.Equal(t, 1, strings.Count(out, SymbolStreaming), "only the optimistic frame is marked")
}

func TestAppender_Clear(t *testing.T) {
	var buf bytes.Buffer
	a := NewAppender(&buf, plain(&buf, 20))
	require.NoError(t, a.Clear())
	assert.Contains(t, buf.String(), "── reset ")
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("closed") }

func TestAppender_WriteError(t *testing.T) {
	a := NewAppender(errWriter{}, nil)
	assert.Error(t, a.Present(engine.Output{Version: 1, View: view.Project(&layout.Text{Content: "x"})}))
}

func TestRecorder_RoundTrip(t *testing.T) {
	var rec bytes.Buffer
	mem := engine.NewMemory()
	r := NewRecorder(&rec, mem)

	s := engine.New(r)
	for _, d := range []string{`{"id":"container","children":[`, `{"id":"text","content":"hi"}`, `,{"id`} {
		_, err := s.Ingest(d)
		require.NoError(t, err)
	}
	require.NoError(t, s.Reset())
	_, err := s.Ingest(`{"id":"text","content":"again"}`)
	require.NoError(t, err)

	records, err := ReadRecords(&rec)
	require.NoError(t, err)
	assert.Equal(t, r.Count(), len(records))

	var presented []engine.Output
	resets := 0
	for _, record := range records {
		if record.Reset {
			resets++
			continue
		}
		require.NotNil(t, record.Output)
		presented = append(presented, *record.Output)
	}
	assert.Equal(t, 1, resets)
	require.Len(t, presented, 4)
	assert.Equal(t, []uint64{1, 2, 3, 1}, []uint64{presented[0].Version, presented[1].Version, presented[2].Version, presented[3].Version})
	assert.True(t, presented[2].Optimistic)

	// The memory sink saw the same final frame the recording holds.
	latest, ok := mem.Latest()
	require.True(t, ok)
	if diff := cmp.Diff(latest, presented[3], cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("recorded output mismatch (-sink +record):\n%s", diff)
	}
}

func TestRecorder_WithoutNext(t *testing.T) {
	var rec bytes.Buffer
	r := NewRecorder(&rec, nil)
	require.NoError(t, r.Present(engine.Output{Version: 1, View: view.Project(&layout.Text{Content: "x"})}))
	require.NoError(t, r.Clear())
	assert.Equal(t, 2, r.Count())
}

func TestReadRecords_Empty(t *testing.T) {
	records, err := ReadRecords(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadRecords_Garbage(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("\xff\xff\xff"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRender))
}
