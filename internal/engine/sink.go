package engine

import "github.com/rileyhilliard/genui/internal/view"

// Output is what a sink receives for one frame.
type Output struct {
	Version    uint64    `json:"version" cbor:"version"`
	Optimistic bool      `json:"optimistic" cbor:"optimistic"`
	View       view.Node `json:"view" cbor:"view"`
}

// Sink displays frames. A sink is bound to exactly one session and keeps
// a single presentation policy for its lifetime: either it replaces what
// it showed before (in place) or it appends a new snapshot per frame.
type Sink interface {
	Present(out Output) error
	// Clear removes everything the sink has displayed.
	Clear() error
}

// Memory is a Sink that keeps every output in memory.
type Memory struct {
	Outputs []Output
	Clears  int
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Present records out.
func (m *Memory) Present(out Output) error {
	m.Outputs = append(m.Outputs, out)
	return nil
}

// Clear drops recorded outputs.
func (m *Memory) Clear() error {
	m.Outputs = nil
	m.Clears++
	return nil
}

// Latest returns the last presented output.
func (m *Memory) Latest() (Output, bool) {
	if len(m.Outputs) == 0 {
		return Output{}, false
	}
	return m.Outputs[len(m.Outputs)-1], true
}
