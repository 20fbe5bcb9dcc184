// Package ui provides the interactive terminal surfaces of genui.
//
// # Components Overview
//
//	Model / RunLive  - In-place live view: a Bubble Tea program whose view is
//	                   replaced by every frame, with focusable form fields
//	Live             - engine.Sink that forwards frames to the program
//	StreamIndicator  - Spinner shown while deltas arrive
//	FillForm         - Post-stream form filling with huh prompts
//
// # Live View
//
// RunLive owns the terminal. The producer runs in a background goroutine
// and pushes frames through Live, which calls program.Send:
//
//	err := ui.RunLive(ctx, ui.LiveOptions{Renderer: r, OnSubmit: submit},
//		func(ctx context.Context, sink engine.Sink) error {
//			s := engine.New(sink)
//			...
//		})
//
// Typed values and focus survive frames because fields are keyed by their
// node path. Submitting a form runs OnSubmit in a command, outside the UI
// loop, so the handler may block on the session.
//
// # Keys
//
//	tab / down        - next field
//	shift+tab / up    - previous field
//	enter             - submit (on a button) or next field (on an input)
//	esc / ctrl+c      - quit
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Submitted forms, finished stream
//	ColorError     (red)    - Failures
//	ColorInfo      (cyan)   - Focus marker
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - Stream spinner
package ui
