package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/view"
)

// SubmitFunc receives a submitted form: every input's value keyed by its
// queryId, plus the triggering button's queryId mapped to itself.
type SubmitFunc func(payload map[string]string)

// Field is an input or button inside a form.
type Field struct {
	QueryID string
	Query   string
}

// FormBinding is the submission state of one form. Bindings are keyed by
// the form's position in the view tree and survive re-materialization,
// so typed values persist across frames and the submit handler is bound
// once per form.
type FormBinding struct {
	path    []int
	inputs  []Field
	buttons []Field
	values  map[string]string
	submit  SubmitFunc
	submits int
}

// Path returns the child-index path of the form from the document root.
func (b *FormBinding) Path() []int {
	return append([]int(nil), b.path...)
}

// Inputs returns the form's inputs in document order.
func (b *FormBinding) Inputs() []Field {
	return append([]Field(nil), b.inputs...)
}

// Buttons returns the form's buttons in document order.
func (b *FormBinding) Buttons() []Field {
	return append([]Field(nil), b.buttons...)
}

// Value returns what has been entered for the input queryID.
func (b *FormBinding) Value(queryID string) string {
	return b.values[queryID]
}

// SetValue records the current value of an input.
func (b *FormBinding) SetValue(queryID, value string) error {
	if !hasField(b.inputs, queryID) {
		return errors.New(errors.ErrSubmit,
			fmt.Sprintf("Form %s has no input %q", PathKey(b.path), queryID),
			"Set values only for inputs that belong to the form.")
	}
	b.values[queryID] = value
	return nil
}

// Submits returns how many times the form has been submitted.
func (b *FormBinding) Submits() int {
	return b.submits
}

// Submit collects the form's values and delivers them to the session's
// submission callback exactly once. buttonID must name one of the form's
// buttons.
func (b *FormBinding) Submit(buttonID string) (map[string]string, error) {
	if !hasField(b.buttons, buttonID) {
		return nil, errors.New(errors.ErrSubmit,
			fmt.Sprintf("Form %s has no button %q", PathKey(b.path), buttonID),
			"Submit with one of the form's own buttons.")
	}

	payload := make(map[string]string, len(b.inputs)+1)
	for _, in := range b.inputs {
		payload[in.QueryID] = b.values[in.QueryID]
	}
	payload[buttonID] = buttonID

	b.submits++
	if b.submit != nil {
		b.submit(payload)
	}
	return payload, nil
}

func (b *FormBinding) update(n view.Node) {
	b.inputs = b.inputs[:0]
	b.buttons = b.buttons[:0]
	for _, c := range n.Children {
		f := Field{QueryID: c.Prop(view.PropQueryID), Query: c.Prop(view.PropQuery)}
		switch c.Kind {
		case layout.KindInput:
			b.inputs = append(b.inputs, f)
		case layout.KindButton:
			b.buttons = append(b.buttons, f)
		}
	}
}

// Forms tracks the bindings of every form in the displayed view.
type Forms struct {
	submit   SubmitFunc
	bindings map[string]*FormBinding
	order    []string
}

func newForms(submit SubmitFunc) *Forms {
	return &Forms{submit: submit, bindings: make(map[string]*FormBinding)}
}

// bind reconciles bindings with the forms present in root.
func (f *Forms) bind(root view.Node) {
	seen := make(map[string]bool)
	f.order = f.order[:0]

	view.Walk(root, func(path []int, n view.Node) bool {
		if n.Kind != layout.KindForm {
			return true
		}
		key := PathKey(path)
		b, ok := f.bindings[key]
		if !ok {
			b = &FormBinding{
				path:   append([]int(nil), path...),
				values: make(map[string]string),
				submit: f.submit,
			}
			f.bindings[key] = b
		}
		b.update(n)
		seen[key] = true
		f.order = append(f.order, key)
		return false
	})

	for key := range f.bindings {
		if !seen[key] {
			delete(f.bindings, key)
		}
	}
}

func (f *Forms) reset() {
	f.bindings = make(map[string]*FormBinding)
	f.order = nil
}

// Get returns the binding of the form at path.
func (f *Forms) Get(path ...int) (*FormBinding, bool) {
	b, ok := f.bindings[PathKey(path)]
	return b, ok
}

// All returns every binding in document order.
func (f *Forms) All() []*FormBinding {
	out := make([]*FormBinding, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.bindings[key])
	}
	return out
}

// Len returns the number of bound forms.
func (f *Forms) Len() int {
	return len(f.order)
}

// PathKey formats a child-index path as "$" or "$.0.1".
func PathKey(path []int) string {
	if len(path) == 0 {
		return "$"
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return "$." + strings.Join(parts, ".")
}

func hasField(fields []Field, queryID string) bool {
	for _, f := range fields {
		if f.QueryID == queryID {
			return true
		}
	}
	return false
}
