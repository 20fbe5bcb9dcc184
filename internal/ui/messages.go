package ui

import "github.com/rileyhilliard/genui/internal/engine"

// FrameMsg carries a frame to present.
type FrameMsg struct {
	Output engine.Output
}

// ClearMsg drops everything shown so far.
type ClearMsg struct{}

// StreamDoneMsg signals that no more frames will arrive.
type StreamDoneMsg struct {
	Err error
}

// SubmitRequest asks the session to submit the form at Form with the
// given button and input values.
type SubmitRequest struct {
	Form   []int
	Button string
	Values map[string]string
}

// SubmitHandler applies a SubmitRequest. It runs outside the UI loop.
type SubmitHandler func(SubmitRequest) error

// submittedMsg reports the outcome of a SubmitRequest.
type submittedMsg struct {
	button string
	err    error
}
