// Package prompt builds the system prompt that teaches a language model
// to emit documents in the layout grammar.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rileyhilliard/genui/internal/layout"
)

// Hint describes one field of a node.
type Hint struct {
	Field string
	Text  string
}

// Instruction tells the model when to use a node kind and what each of
// its fields means.
type Instruction struct {
	Usage  string
	Fields []Hint
}

// Instructions holds one entry per node kind.
var Instructions = map[layout.Kind]Instruction{
	layout.KindContainer: {
		Usage: "Groups other nodes.",
		Fields: []Hint{
			{"id", `Must be the literal string "container".`},
			{"children", "Array of nested nodes."},
		},
	},
	layout.KindText: {
		Usage: "Shows a single piece of plain text.",
		Fields: []Hint{
			{"id", `Literal "text".`},
			{"content", "The text the user will see."},
		},
	},
	layout.KindInput: {
		Usage: "Asks the user a free-text question.",
		Fields: []Hint{
			{"id", `Literal "input".`},
			{"queryId", "Stable identifier the answer is posted back under."},
			{"query", "Question shown to the user."},
		},
	},
	layout.KindButton: {
		Usage: "An option the user can choose.",
		Fields: []Hint{
			{"id", `Literal "button".`},
			{"queryId", "Stable identifier sent when this option is chosen."},
			{"query", "Label shown on the button."},
		},
	},
	layout.KindForm: {
		Usage: "Submits its inputs together when one of its buttons is chosen.",
		Fields: []Hint{
			{"id", `Literal "form".`},
			{"children", "Array of input or button nodes only."},
		},
	},
}

// Example is the document shown to the model.
var Example layout.Node = &layout.Container{Children: []layout.Node{
	&layout.Text{Content: "Hello, world!"},
	&layout.Form{Children: []layout.FormItem{
		&layout.Input{QueryID: "name", Query: "What is your name?"},
		&layout.Button{QueryID: "skip", Query: "Skip"},
	}},
}}

// Generate returns the system prompt. A non-empty preamble is placed
// before the grammar description.
func Generate(preamble string) string {
	var b strings.Builder
	if p := strings.TrimSpace(preamble); p != "" {
		b.WriteString(p)
		b.WriteString("\n\n")
	}

	b.WriteString("You emit JSON that follows this generative UI grammar.\n\n")
	b.WriteString("### Node types\n")
	for _, kind := range layout.Kinds() {
		in := Instructions[kind]
		fmt.Fprintf(&b, "- **%s**: %s\n", kind, in.Usage)
		for _, h := range in.Fields {
			fmt.Fprintf(&b, "  - `%s`: %s\n", h.Field, h.Text)
		}
	}

	b.WriteString("\n### Example\n```json\n")
	b.WriteString(example())
	b.WriteString("\n```\n\n")
	b.WriteString("Return a single root object that conforms exactly to this grammar.\n")
	return b.String()
}

func example() string {
	raw, err := layout.Encode(Example)
	if err != nil {
		panic("prompt: example does not encode: " + err.Error())
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		panic("prompt: example does not indent: " + err.Error())
	}
	return out.String()
}
