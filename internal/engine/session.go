// Package engine ties the stream tracker, the view projection and a sink
// into a rendering session.
//
// A Session is created with the sink it renders to and an optional
// submission callback:
//
//	s := engine.New(sink, engine.WithSubmit(func(p map[string]string) { ... }))
//	for delta := range deltas {
//		if _, err := s.Ingest(delta); err != nil {
//			return err
//		}
//	}
//
// Ingest only fails when the sink fails. Prefixes that cannot be closed
// yet and candidates that break the grammar are absorbed: the previous
// frame stays on screen until a later delta yields a valid one.
package engine

import (
	"github.com/rileyhilliard/genui/internal/closer"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/logger"
	"github.com/rileyhilliard/genui/internal/stream"
	"github.com/rileyhilliard/genui/internal/view"
)

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	oracle      stream.Oracle
	submit      SubmitFunc
	log         logger.Logger
	materialize stream.Materializer
}

// WithOracle replaces the default closer.
func WithOracle(o stream.Oracle) Option {
	return func(c *sessionConfig) { c.oracle = o }
}

// WithSubmit sets the callback that receives submitted forms.
func WithSubmit(fn SubmitFunc) Option {
	return func(c *sessionConfig) { c.submit = fn }
}

// WithLogger sets the session logger.
func WithLogger(l logger.Logger) Option {
	return func(c *sessionConfig) { c.log = l }
}

// WithMaterializer replaces layout.Materialize.
func WithMaterializer(m stream.Materializer) Option {
	return func(c *sessionConfig) { c.materialize = m }
}

// Session renders one streamed document into one sink.
type Session struct {
	tracker *stream.Tracker
	sink    Sink
	forms   *Forms
	log     logger.Logger

	doc  layout.Node
	view *view.Node
}

// New creates a session rendering into sink.
func New(sink Sink, opts ...Option) *Session {
	if sink == nil {
		panic("engine: nil sink")
	}
	cfg := sessionConfig{log: logger.Noop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.oracle == nil {
		cfg.oracle = closer.New()
	}

	trackerOpts := []stream.Option{stream.WithLogger(cfg.log)}
	if cfg.materialize != nil {
		trackerOpts = append(trackerOpts, stream.WithMaterializer(cfg.materialize))
	}

	return &Session{
		tracker: stream.NewTracker(cfg.oracle, trackerOpts...),
		sink:    sink,
		forms:   newForms(cfg.submit),
		log:     cfg.log,
	}
}

// Ingest feeds one delta. It returns the emitted frame, or nil when the
// delta produced nothing new.
func (s *Session) Ingest(delta string) (*stream.Frame, error) {
	frame, ok := s.tracker.Ingest(delta)
	if !ok {
		return nil, nil
	}

	// Optimistic frames reuse the last document, and with it the last view.
	if frame.Document != s.doc || s.view == nil {
		v := view.Project(frame.Document)
		s.view = &v
		s.doc = frame.Document
		s.forms.bind(v)
	}

	out := Output{Version: frame.Version, Optimistic: frame.Optimistic, View: *s.view}
	if err := s.sink.Present(out); err != nil {
		return &frame, errors.WrapWithCode(err, errors.ErrRender,
			"Failed to present frame",
			"Check that the output is still writable.")
	}
	s.log.Debug("presented v%d", frame.Version)
	return &frame, nil
}

// Reset clears the stream state and the sink so the next Ingest starts a
// fresh document.
func (s *Session) Reset() error {
	s.tracker.Reset()
	s.forms.reset()
	s.doc = nil
	s.view = nil
	if err := s.sink.Clear(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Failed to clear output",
			"Check that the output is still writable.")
	}
	return nil
}

// CurrentDocument returns the last validated document, or nil.
func (s *Session) CurrentDocument() layout.Node {
	return s.tracker.Document()
}

// CurrentView returns the view of the last presented frame, or nil.
func (s *Session) CurrentView() *view.Node {
	return s.view
}

// Forms returns the form bindings of the current view.
func (s *Session) Forms() *Forms {
	return s.forms
}

// Tracker exposes the underlying stream state for inspection.
func (s *Session) Tracker() *stream.Tracker {
	return s.tracker
}
