package stream

// Result is the oracle's verdict on the buffer after a delta.
type Result struct {
	// Closable is true when appending Completion to everything fed so
	// far yields syntactically valid JSON.
	Closable   bool
	Completion string
}

// NotClosable is the verdict for a prefix that cannot be closed yet.
var NotClosable = Result{}

// Closed returns a closable verdict with the given completion suffix.
func Closed(completion string) Result {
	return Result{Closable: true, Completion: completion}
}

// Oracle decides whether the text fed so far can be completed into
// valid JSON. Implementations are stateful: they track the full buffer
// across ProcessDelta calls and must forget it on Reset.
type Oracle interface {
	ProcessDelta(delta string) Result
	Reset()
}
