package stream

import (
	"strings"
	"testing"

	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedOracle answers from a fixed delta -> result table. Unknown
// deltas are not closable.
type scriptedOracle struct {
	script map[string]Result
	seen   []string
	resets int
}

func newScriptedOracle(script map[string]Result) *scriptedOracle {
	return &scriptedOracle{script: script}
}

func (o *scriptedOracle) ProcessDelta(delta string) Result {
	o.seen = append(o.seen, delta)
	if r, ok := o.script[delta]; ok {
		return r
	}
	return NotClosable
}

func (o *scriptedOracle) Reset() {
	o.seen = nil
	o.resets++
}

const (
	deltaOpen   = `{"id":"container","children":[`
	deltaText   = `{"id":"text","content":"he`
	deltaFinish = `llo"}`
	deltaMidKey = `,{"id":"but`
	deltaButton = `ton","queryId":"go","query":"Go`
)

func scenarioOracle() *scriptedOracle {
	return newScriptedOracle(map[string]Result{
		deltaOpen:   Closed("]}"),
		deltaText:   Closed(`"}]}`),
		deltaFinish: Closed("]}"),
		deltaMidKey: NotClosable,
		deltaButton: Closed(`"}]}`),
	})
}

func TestTracker_Scenario(t *testing.T) {
	tr := NewTracker(scenarioOracle())

	// A: open container closes with "]}"
	frame, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)
	assert.Equal(t, uint64(1), frame.Version)
	assert.False(t, frame.Optimistic)
	assert.Equal(t, &layout.Container{Children: []layout.Node{}}, frame.Document)

	// B: partial string value is still closable
	frame, ok = tr.Ingest(deltaText)
	require.True(t, ok)
	assert.Equal(t, uint64(2), frame.Version)
	assert.False(t, frame.Optimistic)
	assert.Equal(t, &layout.Container{Children: []layout.Node{&layout.Text{Content: "he"}}}, frame.Document)

	// C: string completes
	frame, ok = tr.Ingest(deltaFinish)
	require.True(t, ok)
	assert.Equal(t, uint64(3), frame.Version)
	stable := frame.Document
	assert.Equal(t, &layout.Container{Children: []layout.Node{&layout.Text{Content: "hello"}}}, stable)

	// D: mid-key is not closable; the tail changed so an optimistic frame
	// shows the last good document.
	frame, ok = tr.Ingest(deltaMidKey)
	require.True(t, ok)
	assert.Equal(t, uint64(4), frame.Version)
	assert.True(t, frame.Optimistic)
	assert.Same(t, stable, frame.Document)
	assert.Equal(t, deltaMidKey, tr.Tail())

	// Button completes as a closable partial value.
	frame, ok = tr.Ingest(deltaButton)
	require.True(t, ok)
	assert.Equal(t, uint64(5), frame.Version)
	assert.False(t, frame.Optimistic)
	assert.Empty(t, tr.Tail())
	container := frame.Document.(*layout.Container)
	require.Len(t, container.Children, 2)
	assert.Equal(t, &layout.Button{QueryID: "go", Query: "Go"}, container.Children[1])
}

func TestTracker_NoopDeltas(t *testing.T) {
	tr := NewTracker(scenarioOracle())
	_, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)

	_, ok = tr.Ingest("")
	assert.False(t, ok, "empty delta must not emit")

	_, ok = tr.Ingest("   ")
	assert.False(t, ok, "whitespace that leaves closability alone must not emit")

	assert.Equal(t, uint64(1), tr.Version())
	assert.Len(t, tr.Frames(), 1)
}

func TestTracker_RepeatedCandidateDoesNotEmit(t *testing.T) {
	oracle := newScriptedOracle(map[string]Result{
		`{"id":"text","content":"x`: Closed(`"}`),
		`"`:                         Closed(`}`),
	})
	tr := NewTracker(oracle)

	_, ok := tr.Ingest(`{"id":"text","content":"x`)
	require.True(t, ok)

	// The closing quote moves from the completion into the buffer; the
	// closed text is identical, so there is nothing new to show.
	_, ok = tr.Ingest(`"`)
	assert.False(t, ok)
	assert.Empty(t, tr.Tail())
	assert.Equal(t, `{"id":"text","content":"x"}`, tr.Cap())
}

func TestTracker_WhitespaceOnlyCandidateChange(t *testing.T) {
	oracle := newScriptedOracle(map[string]Result{
		`{"id":"container","children":[`: Closed("]}"),
		"\n  ":                           Closed("]}"),
	})
	tr := NewTracker(oracle)

	_, ok := tr.Ingest(`{"id":"container","children":[`)
	require.True(t, ok)

	_, ok = tr.Ingest("\n  ")
	assert.False(t, ok, "same document in a different layout is not new content")
	assert.Equal(t, "{\"id\":\"container\",\"children\":[\n  ]}", tr.Cap())
}

func TestTracker_NothingBeforeFirstCap(t *testing.T) {
	tr := NewTracker(newScriptedOracle(nil))

	_, ok := tr.Ingest(`{"id":"cont`)
	assert.False(t, ok)
	_, ok = tr.Ingest(`ainer"`)
	assert.False(t, ok)

	assert.Equal(t, uint64(0), tr.Version())
	assert.Nil(t, tr.Document())
	assert.Equal(t, `{"id":"container"`, tr.Tail())
	_, ok = tr.Current()
	assert.False(t, ok)
}

func TestTracker_SchemaFailureKeepsLastFrame(t *testing.T) {
	oracle := newScriptedOracle(map[string]Result{
		deltaOpen:                          Closed("]}"),
		`{"id":"form","children":[{"id":"`: NotClosable,
		`container","children":[`:          Closed("]}]}]}"),
		`]}`:                               NotClosable,
	})
	tr := NewTracker(oracle)

	first, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)

	// Optimistic frame for the new tail.
	frame, ok := tr.Ingest(`{"id":"form","children":[{"id":"`)
	require.True(t, ok)
	assert.True(t, frame.Optimistic)

	// Closable, but a form may not contain a container.
	_, ok = tr.Ingest(`container","children":[`)
	assert.False(t, ok)
	assert.Equal(t, uint64(2), tr.Version())
	assert.Equal(t, deltaOpen+"]}", tr.Cap())
	assert.Same(t, first.Document, tr.Document())

	// The next change still surfaces as an optimistic frame.
	frame, ok = tr.Ingest(`]}`)
	require.True(t, ok)
	assert.Equal(t, uint64(3), frame.Version)
	assert.True(t, frame.Optimistic)
	assert.Same(t, first.Document, frame.Document)
}

func TestTracker_SyntaxFailureIsTransient(t *testing.T) {
	oracle := newScriptedOracle(map[string]Result{
		deltaOpen: Closed("]}"),
		`{"id":`:  Closed("}"), // a misbehaving oracle
	})
	log := logger.NewBufferLogger()
	tr := NewTracker(oracle, WithLogger(log))

	_, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)

	_, ok = tr.Ingest(`{"id":`)
	assert.False(t, ok)
	assert.Equal(t, uint64(1), tr.Version())
	assert.True(t, log.HasLevel("debug"))

	var rejected bool
	for _, m := range log.Messages {
		if m.Level == "debug" && strings.HasPrefix(m.Message, "candidate rejected: syntax") {
			rejected = true
		}
	}
	assert.True(t, rejected)
}

func TestTracker_CustomMaterializer(t *testing.T) {
	calls := 0
	stub := func(candidate string) (layout.Node, error) {
		calls++
		return &layout.Text{Content: candidate}, nil
	}
	tr := NewTracker(newScriptedOracle(map[string]Result{"a": Closed("b")}), WithMaterializer(stub))

	frame, ok := tr.Ingest("a")
	require.True(t, ok)
	assert.Equal(t, &layout.Text{Content: "ab"}, frame.Document)
	assert.Equal(t, 1, calls)
}

func TestTracker_ResetClearsIdentity(t *testing.T) {
	oracle := scenarioOracle()
	tr := NewTracker(oracle)

	first, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)
	_, ok = tr.Ingest(deltaText)
	require.True(t, ok)

	tr.Reset()
	assert.Equal(t, 1, oracle.resets)
	assert.Empty(t, tr.Raw())
	assert.Empty(t, tr.Cap())
	assert.Empty(t, tr.Tail())
	assert.Equal(t, uint64(0), tr.Version())
	assert.Nil(t, tr.Document())
	assert.Empty(t, tr.Frames())

	again, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)
	assert.Equal(t, first.Version, again.Version)
	assert.Equal(t, first.Document, again.Document)
	assert.Equal(t, first.Optimistic, again.Optimistic)
}

func TestTracker_ResetRightAfterConstruction(t *testing.T) {
	oracle := scenarioOracle()
	tr := NewTracker(oracle)

	assert.NotPanics(t, tr.Reset)
	frame, ok := tr.Ingest(deltaOpen)
	require.True(t, ok)
	assert.Equal(t, uint64(1), frame.Version)
}

func TestTracker_FrameHistory(t *testing.T) {
	tr := NewTracker(scenarioOracle())
	for _, d := range []string{deltaOpen, deltaText, deltaFinish, deltaMidKey} {
		tr.Ingest(d)
	}

	frames := tr.Frames()
	require.Len(t, frames, 4)
	for i, f := range frames {
		assert.Equal(t, uint64(i+1), f.Version, "versions have no gaps")
		assert.Equal(t, f.Optimistic, i == 3)

		byVersion, ok := tr.Frame(f.Version)
		require.True(t, ok)
		assert.Equal(t, f, byVersion)
	}

	_, ok := tr.Frame(0)
	assert.False(t, ok)
	_, ok = tr.Frame(5)
	assert.False(t, ok)

	current, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, frames[3], current)
}

func TestTracker_OracleSeesEveryDelta(t *testing.T) {
	oracle := scenarioOracle()
	tr := NewTracker(oracle)

	tr.Ingest(deltaOpen)
	tr.Ingest("")
	tr.Ingest(deltaText)

	assert.Equal(t, []string{deltaOpen, "", deltaText}, oracle.seen)
	assert.Equal(t, deltaOpen+deltaText, tr.Raw())
}

func TestNewTracker_NilOracle(t *testing.T) {
	assert.Panics(t, func() { NewTracker(nil) })
}

func TestFingerprint(t *testing.T) {
	a := SumString("abc")
	assert.Equal(t, a, Sum([]byte("abc")))
	assert.NotEqual(t, a, SumString("abd"))
	assert.Len(t, a.Short(), 8)
}
