// Package render draws view trees as styled terminal text and provides
// the append-policy sink and the CBOR frame recorder.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/view"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

// Semantic colors, ANSI codes for broad terminal compatibility.
const (
	ColorAccent lipgloss.Color = "6" // Cyan
	ColorAction lipgloss.Color = "4" // Blue
	ColorMuted  lipgloss.Color = "8" // Gray (bright black)
	ColorBorder lipgloss.Color = "7"
)

// Symbols used in rendered output.
const (
	SymbolStreaming = "◐"
	SymbolField     = "▸"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithColor forces colors on or off. Without it the profile is detected
// from the writer.
func WithColor(on bool) Option {
	return func(r *Renderer) {
		if on {
			r.profile = termenv.ANSI256
		} else {
			r.profile = termenv.Ascii
		}
		r.forced = true
	}
}

// Renderer turns view trees into terminal text.
type Renderer struct {
	lip     *lipgloss.Renderer
	width   int
	profile termenv.Profile
	forced  bool

	text     lipgloss.Style
	label    lipgloss.Style
	field    lipgloss.Style
	button   lipgloss.Style
	form     lipgloss.Style
	muted    lipgloss.Style
	children lipgloss.Style
}

// NewRenderer creates a renderer whose color profile matches w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth}
	for _, opt := range opts {
		opt(r)
	}

	if r.forced {
		r.lip = lipgloss.NewRenderer(w, termenv.WithProfile(r.profile))
		// lipgloss re-detects the profile from the writer unless told.
		r.lip.SetColorProfile(r.profile)
	} else {
		r.lip = lipgloss.NewRenderer(w)
	}

	r.text = r.lip.NewStyle()
	r.label = r.lip.NewStyle().Bold(true)
	r.field = r.lip.NewStyle().Foreground(ColorMuted)
	r.button = r.lip.NewStyle().Foreground(ColorAction).Bold(true)
	r.form = r.lip.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	r.muted = r.lip.NewStyle().Foreground(ColorMuted)
	r.children = r.lip.NewStyle().PaddingLeft(2)
	return r
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Overlay replaces how an input or button is drawn. path is the node's
// child-index path from the root. Returning false keeps the default.
type Overlay func(path []int, n view.Node, width int) (string, bool)

// Values is an Overlay that shows values[queryId] in every input.
func (r *Renderer) Values(values map[string]string) Overlay {
	return func(_ []int, n view.Node, width int) (string, bool) {
		if n.Kind != layout.KindInput {
			return "", false
		}
		return r.Input(n, values[n.Prop(view.PropQueryID)], width), true
	}
}

// Render draws v. overlay may be nil.
func (r *Renderer) Render(v view.Node, overlay Overlay) string {
	return r.node(nil, v, overlay, r.width)
}

// Streaming returns the marker printed under an optimistic frame.
// Shows: ◐ streaming...
func (r *Renderer) Streaming() string {
	return r.muted.Render(SymbolStreaming + " streaming...")
}

// Muted renders s in the muted color.
func (r *Renderer) Muted(s string) string {
	return r.muted.Render(s)
}

func (r *Renderer) node(path []int, n view.Node, overlay Overlay, width int) string {
	if width < 1 {
		width = 1
	}
	if overlay != nil && (n.Kind == layout.KindInput || n.Kind == layout.KindButton) {
		if s, ok := overlay(path, n, width); ok {
			return s
		}
	}

	switch n.Kind {
	case layout.KindText:
		return r.text.Width(width).Render(n.Prop(view.PropContent))
	case layout.KindInput:
		return r.Input(n, "", width)
	case layout.KindButton:
		return r.Button(n)
	case layout.KindForm:
		// Border and padding take four columns.
		inner := r.stack(path, n.Children, overlay, width-4)
		if inner == "" {
			inner = r.muted.Render("(empty form)")
		}
		return r.form.Render(inner)
	case layout.KindContainer:
		if len(path) == 0 {
			return r.stack(path, n.Children, overlay, width)
		}
		return r.children.Render(r.stack(path, n.Children, overlay, width-2))
	}
	return ""
}

func (r *Renderer) stack(path []int, children []view.Node, overlay Overlay, width int) string {
	parts := make([]string, 0, len(children))
	for i, c := range children {
		childPath := append(path[:len(path):len(path)], i)
		parts = append(parts, r.node(childPath, c, overlay, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Focused draws a button as the current focus target.
// Shows: [ Go ] reversed
func (r *Renderer) Focused(n view.Node) string {
	return r.button.Reverse(true).Render("[ " + n.Label() + " ]")
}

// Input draws an input with its label and current value.
// Shows: Name? ▸ hello
func (r *Renderer) Input(n view.Node, value string, width int) string {
	var b strings.Builder
	if label := r.Label(n); label != "" {
		b.WriteString(label)
		b.WriteString(" ")
	}
	b.WriteString(r.field.Render(SymbolField))
	b.WriteString(" ")
	if value == "" {
		b.WriteString(r.muted.Render(strings.Repeat("_", min(12, max(width-lipgloss.Width(b.String()), 1)))))
	} else {
		b.WriteString(value)
	}
	return b.String()
}

// Label draws the label of an input, or "" when it has none.
func (r *Renderer) Label(n view.Node) string {
	if label := n.Label(); label != "" {
		return r.label.Render(label)
	}
	return ""
}

// Button draws a button.
// Shows: [ Go ]
func (r *Renderer) Button(n view.Node) string {
	return r.button.Render("[ " + n.Label() + " ]")
}
