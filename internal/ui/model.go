package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/render"
	"github.com/rileyhilliard/genui/internal/view"
)

// field is a focusable input or button inside a form.
type field struct {
	key     string // node path key
	form    []int
	kind    layout.Kind
	queryID string
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// Model is the Bubble Tea model of the in-place live view. Each frame
// replaces the displayed view; typed input values and focus are kept
// across frames by the position of their node.
type Model struct {
	renderer *render.Renderer
	onSubmit SubmitHandler
	cancel   func()

	out      engine.Output
	hasFrame bool

	fields []field
	focus  int
	inputs map[string]textinput.Model

	indicator StreamIndicator
	done      bool
	status    string
	failed    bool
	quitting  bool
}

// NewModel creates a live view model. onSubmit and cancel may be nil.
func NewModel(r *render.Renderer, onSubmit SubmitHandler, cancel func()) Model {
	indicator := NewStreamIndicator()
	indicator.Start()
	return Model{
		renderer:  r,
		onSubmit:  onSubmit,
		cancel:    cancel,
		inputs:    make(map[string]textinput.Model),
		indicator: indicator,
	}
}

// Init starts the stream indicator animation.
func (m Model) Init() tea.Cmd {
	return m.indicator.Tick()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		m.out = msg.Output
		m.hasFrame = true
		m.indicator.Frames++
		m.rebuild()
		return m, nil

	case ClearMsg:
		m.out = engine.Output{}
		m.hasFrame = false
		m.fields = nil
		m.focus = 0
		m.inputs = make(map[string]textinput.Model)
		m.status = ""
		return m, nil

	case StreamDoneMsg:
		m.done = true
		m.indicator.Finish(msg.Err)
		if msg.Err != nil {
			m.status = msg.Err.Error()
			m.failed = true
		}
		// Nothing to interact with: leave the final frame on screen.
		if len(m.fields) == 0 {
			return m, tea.Quit
		}
		return m, nil

	case submittedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.failed = true
		} else {
			m.status = "submitted with " + msg.button
			m.failed = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.indicator, cmd = m.indicator.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Next):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, keys.Submit):
		f, ok := m.focused()
		if !ok {
			return m, nil
		}
		if f.kind == layout.KindButton {
			return m, m.submit(f)
		}
		m.moveFocus(1)
		return m, nil
	}

	f, ok := m.focused()
	if !ok || f.kind != layout.KindInput {
		return m, nil
	}
	ti := m.inputs[f.key]
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[f.key] = ti
	return m, cmd
}

// rebuild collects the focusable fields of the current view, keeping the
// focused field and every typed value that still has a node.
func (m *Model) rebuild() {
	var focusedKey string
	if f, ok := m.focused(); ok {
		focusedKey = f.key
	}

	m.fields = nil
	view.Walk(m.out.View, func(path []int, n view.Node) bool {
		if n.Kind != layout.KindForm {
			return true
		}
		form := append([]int(nil), path...)
		for i, c := range n.Children {
			childPath := append(form[:len(form):len(form)], i)
			f := field{
				key:     engine.PathKey(childPath),
				form:    form,
				kind:    c.Kind,
				queryID: c.Prop(view.PropQueryID),
			}
			m.fields = append(m.fields, f)
			if c.Kind == layout.KindInput {
				if _, ok := m.inputs[f.key]; !ok {
					ti := textinput.New()
					ti.Prompt = ""
					ti.CharLimit = 256
					m.inputs[f.key] = ti
				}
			}
		}
		return false
	})

	m.focus = 0
	for i, f := range m.fields {
		if f.key == focusedKey {
			m.focus = i
			break
		}
	}
	m.syncFocus()
}

func (m *Model) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.syncFocus()
}

// syncFocus gives the cursor to the focused input only.
func (m *Model) syncFocus() {
	f, ok := m.focused()
	for k, ti := range m.inputs {
		if ok && k == f.key {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[k] = ti
	}
}

func (m Model) focused() (field, bool) {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return field{}, false
	}
	return m.fields[m.focus], true
}

// Values returns the typed values of the inputs in the form at path.
func (m Model) Values(form []int) map[string]string {
	formKey := engine.PathKey(form)
	values := make(map[string]string)
	for _, f := range m.fields {
		if f.kind == layout.KindInput && engine.PathKey(f.form) == formKey {
			values[f.queryID] = m.inputs[f.key].Value()
		}
	}
	return values
}

func (m Model) submit(f field) tea.Cmd {
	req := SubmitRequest{
		Form:   f.form,
		Button: f.queryID,
		Values: m.Values(f.form),
	}
	handler := m.onSubmit
	return func() tea.Msg {
		if handler == nil {
			return submittedMsg{button: req.Button}
		}
		return submittedMsg{button: req.Button, err: handler(req)}
	}
}

// View renders the live view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("genui"))
	if m.hasFrame {
		sb.WriteString(versionStyle.Render(" v" + strconv.FormatUint(m.out.Version, 10)))
	}
	sb.WriteString("  ")
	sb.WriteString(m.indicator.View())
	sb.WriteString("\n\n")

	if m.hasFrame {
		if body := m.renderer.Render(m.out.View, m.overlay); body != "" {
			sb.WriteString(body)
			sb.WriteString("\n")
		}
		if m.out.Optimistic && !m.done {
			sb.WriteString(m.renderer.Streaming())
			sb.WriteString("\n")
		}
	}

	if m.status != "" {
		sb.WriteString("\n")
		if m.failed {
			sb.WriteString(errorStyle.Render(SymbolFail + " " + m.status))
		} else {
			sb.WriteString(successStyle.Render(SymbolSuccess + " " + m.status))
		}
		sb.WriteString("\n")
	}

	if len(m.fields) > 0 {
		sb.WriteString("\n")
		sb.WriteString(footerStyle.Render("tab: next | enter: submit | esc: quit"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// overlay draws inputs with their text fields and marks the focus.
func (m Model) overlay(path []int, n view.Node, width int) (string, bool) {
	k := engine.PathKey(path)
	f, focused := m.focused()
	focused = focused && f.key == k

	switch n.Kind {
	case layout.KindInput:
		ti, ok := m.inputs[k]
		if !ok {
			return "", false
		}
		marker := " "
		if focused {
			marker = focusStyle.Render(SymbolFocus)
		}
		label := m.renderer.Label(n)
		if label != "" {
			label += " "
		}
		return marker + label + ti.View(), true
	case layout.KindButton:
		if focused {
			return focusStyle.Render(SymbolFocus) + m.renderer.Focused(n), true
		}
		return " " + m.renderer.Button(n), true
	}
	return "", false
}

// Frame returns the last presented output.
func (m Model) Frame() (engine.Output, bool) {
	return m.out, m.hasFrame
}

// Done reports whether the stream has ended.
func (m Model) Done() bool {
	return m.done
}
