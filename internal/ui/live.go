package ui

import (
	"context"
	stderrors "errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/render"
)

// Live is the in-place sink: it forwards frames to a running Bubble Tea
// program via program.Send, which is goroutine-safe.
type Live struct {
	program *tea.Program
}

// NewLive creates a sink bound to program.
func NewLive(program *tea.Program) *Live {
	return &Live{program: program}
}

// Present replaces the displayed view with out.
func (l *Live) Present(out engine.Output) error {
	l.program.Send(FrameMsg{Output: out})
	return nil
}

// Clear empties the view.
func (l *Live) Clear() error {
	l.program.Send(ClearMsg{})
	return nil
}

// Done tells the view the stream ended.
func (l *Live) Done(err error) {
	l.program.Send(StreamDoneMsg{Err: err})
}

// LiveOptions configures RunLive.
type LiveOptions struct {
	Renderer *render.Renderer
	OnSubmit SubmitHandler
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Producer streams a document into sink. It must return when ctx is
// cancelled.
type Producer func(ctx context.Context, sink engine.Sink) error

// RunLive starts the live view and runs produce in a background goroutine
// while the TUI runs in the calling goroutine. It returns once the user
// quits, or once the stream ends and there is nothing left to interact
// with.
func RunLive(ctx context.Context, opts LiveOptions, produce Producer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(opts.Renderer, opts.OnSubmit, cancel)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(model, programOpts...)
	live := NewLive(program)

	resultChan := make(chan error, 1)
	go func() {
		err := produce(ctx, live)
		resultChan <- err
		live.Done(err)
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-resultChan
		// The user quitting cancels the context, which the program reports.
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	cancel()
	err := <-resultChan
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
