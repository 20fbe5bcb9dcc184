package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/genui/internal/config"
	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/logger"
	"github.com/rileyhilliard/genui/internal/render"
	"github.com/rileyhilliard/genui/internal/source"
	"github.com/rileyhilliard/genui/internal/ui"
	"github.com/rileyhilliard/genui/internal/view"
)

// sinkMode says where frames go.
type sinkMode int

const (
	// sinkAppend prints a snapshot per frame.
	sinkAppend sinkMode = iota
	// sinkLive runs the in-place Bubble Tea view.
	sinkLive
	// sinkSilent keeps frames in memory, for --json.
	sinkSilent
)

// streamRun drives one session through a list of steps. The session is
// guarded by mu because the live view submits forms from its own
// goroutine while the producer is still ingesting.
type streamRun struct {
	cfg   *config.Config
	out   io.Writer
	mode  sinkMode
	color bool
	// fill prompts for every unsubmitted form once an append stream ends.
	fill bool
	log  logger.Logger

	mu          sync.Mutex
	session     *engine.Session
	submissions []map[string]string
}

// streamResult summarizes a finished run.
type streamResult struct {
	Version     uint64              `json:"version"`
	Frames      int                 `json:"frames"`
	Optimistic  bool                `json:"optimistic"`
	View        *view.Node          `json:"view,omitempty"`
	Submissions []map[string]string `json:"submissions,omitempty"`
	Recording   string              `json:"recording,omitempty"`
}

// newStreamRun picks the sink mode for the terminal the command runs in.
// The in-place view needs a terminal on both ends; anything else falls
// back to appending snapshots.
func newStreamRun(c *config.Config, out io.Writer) *streamRun {
	r := &streamRun{cfg: c, out: out, color: useColor(c), log: logger.NewEnvLogger("[engine]")}

	interactive := out == io.Writer(os.Stdout) && isTerminal(os.Stdout) && isTerminal(os.Stdin)
	switch {
	case machineMode:
		r.mode = sinkSilent
	case c.Render.Policy == config.PolicyInPlace && interactive:
		r.mode = sinkLive
		// Log lines would tear through the live view.
		r.log = logger.Noop()
	default:
		r.mode = sinkAppend
		r.fill = interactive
	}
	return r
}

func (r *streamRun) run(ctx context.Context, steps []source.Step) (*streamResult, error) {
	rend := render.NewRenderer(r.out,
		render.WithWidth(r.cfg.Render.Width),
		render.WithColor(r.color))

	wrap := func(s engine.Sink) engine.Sink { return s }
	if path := r.cfg.Render.Record; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrRender,
				"Failed to create recording "+path,
				"Check that the directory exists and is writable.")
		}
		defer f.Close()
		wrap = func(s engine.Sink) engine.Sink { return render.NewRecorder(f, s) }
	}

	play := func(ctx context.Context, sink engine.Sink) error {
		r.mu.Lock()
		r.session = engine.New(wrap(sink),
			engine.WithSubmit(r.collect),
			engine.WithLogger(r.log))
		r.mu.Unlock()
		return source.Play(ctx, steps, r.cfg.Stream.Delay, r.apply)
	}

	var err error
	switch r.mode {
	case sinkLive:
		err = ui.RunLive(ctx, ui.LiveOptions{Renderer: rend, OnSubmit: r.submitRequest}, play)
	case sinkSilent:
		err = play(ctx, engine.NewMemory())
	default:
		err = play(ctx, render.NewAppender(r.out, rend))
		if err == nil && r.fill {
			err = r.fillForms()
		}
	}
	if err != nil {
		return nil, err
	}
	return r.result(), nil
}

// apply performs one step against the session.
func (r *streamRun) apply(step source.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case step.Reset:
		return r.session.Reset()
	case step.Submit != nil:
		return r.submit(step.Submit.Form, step.Submit.Button, step.Submit.Values)
	default:
		_, err := r.session.Ingest(step.Delta)
		return err
	}
}

// submitRequest is the live view's submit handler.
func (r *streamRun) submitRequest(req ui.SubmitRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submit(req.Form, req.Button, req.Values)
}

// submit fills and submits the form at path. Callers hold mu.
func (r *streamRun) submit(path []int, button string, values map[string]string) error {
	b, ok := r.session.Forms().Get(path...)
	if !ok {
		return errors.New(errors.ErrSubmit,
			fmt.Sprintf("No form at %s", engine.PathKey(path)),
			"Submit a form that is part of the current document.")
	}
	for _, id := range slices.Sorted(maps.Keys(values)) {
		if err := b.SetValue(id, values[id]); err != nil {
			return err
		}
	}
	_, err := b.Submit(button)
	return err
}

// collect is the session's submission callback. It runs under mu.
func (r *streamRun) collect(payload map[string]string) {
	r.submissions = append(r.submissions, payload)
	r.log.Debug("submitted %v", payload)
}

// fillForms asks for every form nobody submitted during the stream.
func (r *streamRun) fillForms() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.session.Forms().All() {
		if b.Submits() > 0 || len(b.Buttons()) == 0 {
			continue
		}
		if _, err := ui.FillForm(b, false); err != nil {
			return err
		}
	}
	return nil
}

func (r *streamRun) result() *streamResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &streamResult{
		Submissions: r.submissions,
		Recording:   r.cfg.Render.Record,
	}
	if r.session == nil {
		return res
	}
	t := r.session.Tracker()
	res.Version = t.Version()
	res.Frames = len(t.Frames())
	if f, ok := t.Current(); ok {
		res.Optimistic = f.Optimistic
	}
	res.View = r.session.CurrentView()
	return res
}

// write prints the outcome of a run: a JSON envelope in machine mode,
// otherwise each submission as a YAML document.
func (r *streamRun) write(res *streamResult) error {
	w := r.out
	if machineMode {
		return WriteJSONSuccess(w, res)
	}
	for _, payload := range res.Submissions {
		data, err := yaml.Marshal(payload)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrSubmit, "Failed to encode submission", "")
		}
		fmt.Fprintf(w, "---\n%s", data)
	}
	if res.Recording != "" && r.cfg.Output.Verbosity != "quiet" {
		fmt.Fprintf(os.Stderr, "%s recording written to %s\n", ui.SymbolSuccess, res.Recording)
	}
	return nil
}
