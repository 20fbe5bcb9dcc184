// Package view projects validated layout trees into view-model trees:
// one view node per layout node, each carrying the concrete element tag
// for its kind and a flat prop bag.
package view

import "github.com/rileyhilliard/genui/internal/layout"

// Tag is a concrete output element.
type Tag string

const (
	TagGroup  Tag = "div"
	TagText   Tag = "p"
	TagInput  Tag = "input"
	TagAction Tag = "button"
	TagForm   Tag = "form"
)

// Prop keys used in Node.Props.
const (
	PropContent = "content"
	PropQueryID = "queryId"
	PropQuery   = "query"
)

// tags is the fixed, total kind -> element mapping.
var tags = map[layout.Kind]Tag{
	layout.KindContainer: TagGroup,
	layout.KindText:      TagText,
	layout.KindInput:     TagInput,
	layout.KindButton:    TagAction,
	layout.KindForm:      TagForm,
}

// TagFor returns the element tag used for kind.
func TagFor(kind layout.Kind) Tag {
	return tags[kind]
}

// ClassName returns the class attached to every element of kind.
func ClassName(kind layout.Kind) string {
	return "generative-ui-" + string(kind)
}

// Node is one element of a view-model tree. View trees are built fresh
// on every projection and never mutated afterwards.
type Node struct {
	Kind     layout.Kind       `json:"kind" cbor:"kind"`
	Tag      Tag               `json:"tag" cbor:"tag"`
	Class    string            `json:"class" cbor:"class"`
	Props    map[string]string `json:"props,omitempty" cbor:"props,omitempty"`
	Children []Node            `json:"children,omitempty" cbor:"children,omitempty"`
}

// Prop returns the named prop, or "".
func (n Node) Prop(key string) string {
	return n.Props[key]
}

// Project maps a layout tree to a view tree. It is deterministic and
// preserves child count and order at every level.
func Project(n layout.Node) Node {
	out := Node{
		Kind:  n.Kind(),
		Tag:   TagFor(n.Kind()),
		Class: ClassName(n.Kind()),
	}

	switch n := n.(type) {
	case *layout.Container:
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Project(c)
		}
	case *layout.Text:
		out.Props = map[string]string{PropContent: n.Content}
	case *layout.Input:
		out.Props = queryProps(n.QueryID, n.Query)
	case *layout.Button:
		out.Props = queryProps(n.QueryID, n.Query)
	case *layout.Form:
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Project(c)
		}
	}
	return out
}

// DefaultAction is the label of a button whose query is empty.
const DefaultAction = "Submit"

// Label returns the visible text of an input or button: its query, or
// DefaultAction for an unlabeled button.
func (n Node) Label() string {
	if q := n.Prop(PropQuery); q != "" {
		return q
	}
	if n.Kind == layout.KindButton {
		return DefaultAction
	}
	return ""
}

func queryProps(queryID, query string) map[string]string {
	return map[string]string{PropQueryID: queryID, PropQuery: query}
}

// Walk visits n and its descendants in pre-order with their child-index
// paths. Returning false skips the node's children.
func Walk(n Node, fn func(path []int, n Node) bool) {
	walk(nil, n, fn)
}

func walk(path []int, n Node, fn func(path []int, n Node) bool) {
	if !fn(path, n) {
		return
	}
	for i, c := range n.Children {
		walk(append(path[:len(path):len(path)], i), c, fn)
	}
}
