package render

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/errors"
)

// encMode uses Core Deterministic Encoding so the same frame always
// produces the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("render: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("render: CBOR decoder initialization failed: " + err.Error())
	}
}

// Record is one entry of a frame recording. A reset entry carries no
// output.
type Record struct {
	Reset  bool           `json:"reset,omitempty" cbor:"reset,omitempty"`
	Output *engine.Output `json:"output,omitempty" cbor:"output,omitempty"`
}

// Recorder is a sink decorator that appends every presented frame, and
// every clear, to a CBOR stream before passing it on.
type Recorder struct {
	next engine.Sink
	enc  *cbor.Encoder
	n    int
}

// NewRecorder records to w. next may be nil to record without
// displaying.
func NewRecorder(w io.Writer, next engine.Sink) *Recorder {
	return &Recorder{next: next, enc: encMode.NewEncoder(w)}
}

// Present records out and forwards it.
func (r *Recorder) Present(out engine.Output) error {
	if err := r.write(Record{Output: &out}); err != nil {
		return err
	}
	if r.next == nil {
		return nil
	}
	return r.next.Present(out)
}

// Clear records a reset and forwards it.
func (r *Recorder) Clear() error {
	if err := r.write(Record{Reset: true}); err != nil {
		return err
	}
	if r.next == nil {
		return nil
	}
	return r.next.Clear()
}

// Count returns the number of records written.
func (r *Recorder) Count() int {
	return r.n
}

func (r *Recorder) write(rec Record) error {
	if err := r.enc.Encode(rec); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Failed to write frame record",
			"Check that the recording path is writable.")
	}
	r.n++
	return nil
}

// ReadRecords decodes every record in a recording.
func ReadRecords(rd io.Reader) ([]Record, error) {
	dec := decMode.NewDecoder(rd)
	var records []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, errors.WrapWithCode(err, errors.ErrRender,
				"Failed to decode frame recording",
				"Make sure the file was written by 'genui render --record'.")
		}
		records = append(records, rec)
	}
}
