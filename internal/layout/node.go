// Package layout defines the generative-UI node grammar and turns
// candidate JSON documents into validated node trees.
//
// The grammar is a closed set of five node kinds discriminated by the
// "id" field:
//
//	container  {"id":"container","children":[<node>...]}
//	text       {"id":"text","content":"..."}
//	input      {"id":"input","queryId":"...","query":"..."}
//	button     {"id":"button","queryId":"...","query":"..."}
//	form       {"id":"form","children":[<input|button>...]}
//
// Node and FormItem are sealed interfaces, so a form can only ever hold
// inputs and buttons once a tree has been built.
package layout

import "encoding/json"

// Kind is the discriminant stored in a node's "id" field.
type Kind string

const (
	KindContainer Kind = "container"
	KindText      Kind = "text"
	KindInput     Kind = "input"
	KindButton    Kind = "button"
	KindForm      Kind = "form"
)

// Kinds lists every node kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindContainer, KindText, KindInput, KindButton, KindForm}
}

// Node is a validated UI node.
type Node interface {
	Kind() Kind
	node()
}

// FormItem is a node allowed directly inside a form.
type FormItem interface {
	Node
	formItem()
}

// Container groups arbitrary child nodes.
type Container struct {
	Children []Node
}

// Text displays a plain string.
type Text struct {
	Content string
}

// Input asks the user a free-text question.
type Input struct {
	QueryID string
	Query   string
}

// Button is a clickable option; inside a form it submits the form.
type Button struct {
	QueryID string
	Query   string
}

// Form packages inputs and buttons that submit together.
type Form struct {
	Children []FormItem
}

func (*Container) Kind() Kind { return KindContainer }
func (*Text) Kind() Kind      { return KindText }
func (*Input) Kind() Kind     { return KindInput }
func (*Button) Kind() Kind    { return KindButton }
func (*Form) Kind() Kind      { return KindForm }

func (*Container) node() {}
func (*Text) node()      {}
func (*Input) node()     {}
func (*Button) node()    {}
func (*Form) node()      {}

func (*Input) formItem()  {}
func (*Button) formItem() {}

// MarshalJSON writes the node with "id" first, matching the wire grammar.
func (c *Container) MarshalJSON() ([]byte, error) {
	children := c.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		ID       Kind   `json:"id"`
		Children []Node `json:"children"`
	}{KindContainer, children})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      Kind   `json:"id"`
		Content string `json:"content"`
	}{KindText, t.Content})
}

func (i *Input) MarshalJSON() ([]byte, error) {
	return marshalQuery(KindInput, i.QueryID, i.Query)
}

func (b *Button) MarshalJSON() ([]byte, error) {
	return marshalQuery(KindButton, b.QueryID, b.Query)
}

func (f *Form) MarshalJSON() ([]byte, error) {
	children := f.Children
	if children == nil {
		children = []FormItem{}
	}
	return json.Marshal(struct {
		ID       Kind       `json:"id"`
		Children []FormItem `json:"children"`
	}{KindForm, children})
}

func marshalQuery(kind Kind, queryID, query string) ([]byte, error) {
	return json.Marshal(struct {
		ID      Kind   `json:"id"`
		QueryID string `json:"queryId"`
		Query   string `json:"query"`
	}{kind, queryID, query})
}

// Encode returns the canonical JSON encoding of a node tree. Two trees
// encode to the same bytes iff they are structurally equal.
func Encode(n Node) ([]byte, error) {
	return json.Marshal(n)
}

// Walk visits n and its descendants in pre-order. path holds the child
// indexes leading from the root to the visited node. Returning false
// from fn skips the node's children.
func Walk(n Node, fn func(path []int, n Node) bool) {
	walk(nil, n, fn)
}

func walk(path []int, n Node, fn func(path []int, n Node) bool) {
	if !fn(path, n) {
		return
	}
	switch n := n.(type) {
	case *Container:
		for i, c := range n.Children {
			walk(append(path[:len(path):len(path)], i), c, fn)
		}
	case *Form:
		for i, c := range n.Children {
			walk(append(path[:len(path):len(path)], i), c, fn)
		}
	}
}
