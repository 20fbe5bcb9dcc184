// Package stream owns the raw text of one streamed document and decides,
// delta by delta, whether a new renderable frame exists.
//
// A Tracker appends every delta to its buffer and asks an Oracle whether
// the buffer can be closed into valid JSON. When it can, the closed
// candidate is materialized into a layout tree; a successful candidate
// becomes the new cap. Whatever the buffer holds beyond the cap's source
// is the tail. A frame is emitted only when the cap identity or the tail
// fingerprint differs from the previous emission, so deltas that change
// nothing visible never cause a re-render.
package stream

import (
	"strings"

	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/logger"
)

// Frame is an immutable, versioned snapshot of the document.
type Frame struct {
	// Version starts at 1 for the first frame of a session and grows by
	// one per emitted frame.
	Version    uint64
	Document   layout.Node
	Optimistic bool
}

// Materializer turns a closed candidate into a validated tree.
type Materializer func(candidate string) (layout.Node, error)

// Option configures a Tracker.
type Option func(*Tracker)

// WithMaterializer replaces layout.Materialize.
func WithMaterializer(m Materializer) Option {
	return func(t *Tracker) { t.materialize = m }
}

// WithLogger sets the logger used for per-delta debug output.
func WithLogger(l logger.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// signal is what emission compares against the last emitted frame.
type signal struct {
	cap  Fingerprint
	tail Fingerprint
}

// Tracker holds the stream state of a single session. It is not safe for
// concurrent use; deltas must arrive from one producer.
type Tracker struct {
	oracle      Oracle
	materialize Materializer
	log         logger.Logger

	raw       strings.Builder
	capText   string
	capSource int
	capID     Fingerprint
	doc       layout.Node
	tail      string

	version    uint64
	frames     []Frame
	emitted    signal
	hasEmitted bool
}

// NewTracker creates a tracker that consults oracle after every delta.
func NewTracker(oracle Oracle, opts ...Option) *Tracker {
	if oracle == nil {
		panic("stream: nil oracle")
	}
	t := &Tracker{
		oracle:      oracle,
		materialize: layout.Materialize,
		log:         logger.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ingest appends delta to the buffer and returns the new frame, if one
// is due. At most one frame is produced per call. Non-closable prefixes
// and candidates that fail to materialize are not errors: the previous
// frame simply stays current.
func (t *Tracker) Ingest(delta string) (Frame, bool) {
	t.raw.WriteString(delta)
	raw := t.raw.String()
	t.log.Debug("recv delta %q (buffer %d bytes)", delta, len(raw))

	result := t.oracle.ProcessDelta(delta)
	if result.Closable {
		t.log.Debug("closable, completion %q", result.Completion)
		if !t.accept(raw, raw+result.Completion) {
			t.tail = raw[t.capSource:]
			return Frame{}, false
		}
	} else {
		t.log.Debug("not closable, keeping cap")
	}

	t.tail = raw[t.capSource:]
	return t.emit()
}

// accept materializes candidate and, on success, makes it the cap.
// It reports false when the candidate was rejected.
func (t *Tracker) accept(raw, candidate string) bool {
	if candidate == t.capText {
		// Same closed text, but the delta may have moved characters from
		// the completion into the buffer.
		t.capSource = len(raw)
		return true
	}

	doc, err := t.materialize(candidate)
	if err != nil {
		t.log.Debug("candidate rejected: %v", err)
		return false
	}
	canonical, err := layout.Encode(doc)
	if err != nil {
		t.log.Debug("candidate not encodable: %v", err)
		return false
	}

	t.capText = candidate
	t.capSource = len(raw)
	t.capID = Sum(canonical)
	t.doc = doc
	t.log.Debug("cap advanced to %s", t.capID.Short())
	return true
}

func (t *Tracker) emit() (Frame, bool) {
	if t.doc == nil {
		t.log.Debug("no document yet, skipping frame")
		return Frame{}, false
	}

	sig := signal{cap: t.capID, tail: SumString(strings.TrimSpace(t.tail))}
	if t.hasEmitted && sig == t.emitted {
		t.log.Debug("cap and tail unchanged, skipping frame")
		return Frame{}, false
	}

	t.version++
	frame := Frame{
		Version:    t.version,
		Document:   t.doc,
		Optimistic: t.tail != "",
	}
	t.frames = append(t.frames, frame)
	t.emitted = sig
	t.hasEmitted = true
	t.log.Debug("frame v%d (optimistic=%t)", frame.Version, frame.Optimistic)
	return frame, true
}

// Reset returns the tracker and its oracle to a fresh session.
func (t *Tracker) Reset() {
	t.raw.Reset()
	t.capText = ""
	t.capSource = 0
	t.capID = Fingerprint{}
	t.doc = nil
	t.tail = ""
	t.version = 0
	t.frames = nil
	t.emitted = signal{}
	t.hasEmitted = false
	t.oracle.Reset()
	t.log.Debug("reset")
}

// Raw returns everything ingested since the last reset.
func (t *Tracker) Raw() string {
	return t.raw.String()
}

// Cap returns the last accepted closed candidate, or "" before the first.
func (t *Tracker) Cap() string {
	return t.capText
}

// Tail returns the buffered text not covered by the current cap.
func (t *Tracker) Tail() string {
	return t.tail
}

// Version returns the version of the last emitted frame, 0 if none.
func (t *Tracker) Version() uint64 {
	return t.version
}

// Document returns the last validated document, or nil.
func (t *Tracker) Document() layout.Node {
	return t.doc
}

// Current returns the most recent frame.
func (t *Tracker) Current() (Frame, bool) {
	if len(t.frames) == 0 {
		return Frame{}, false
	}
	return t.frames[len(t.frames)-1], true
}

// Frame returns the frame emitted with the given version.
func (t *Tracker) Frame(version uint64) (Frame, bool) {
	if version == 0 || version > uint64(len(t.frames)) {
		return Frame{}, false
	}
	return t.frames[version-1], true
}

// Frames returns every frame emitted since the last reset, oldest first.
func (t *Tracker) Frames() []Frame {
	return append([]Frame(nil), t.frames...)
}
