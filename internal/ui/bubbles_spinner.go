package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) shown while a
// document is streaming.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// StreamState is the lifecycle of the stream feeding a live view.
type StreamState int

const (
	StreamWaiting StreamState = iota
	StreamActive
	StreamDone
	StreamFailed
)

// StreamIndicator is a Bubble Tea component that animates while deltas
// arrive and settles on a final symbol when the stream ends.
type StreamIndicator struct {
	spinner   spinner.Model
	State     StreamState
	Frames    int
	StartTime time.Time
	EndTime   time.Time
}

// NewStreamIndicator creates an indicator in the waiting state.
func NewStreamIndicator() StreamIndicator {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return StreamIndicator{spinner: sp}
}

// Start marks the stream active and returns the first tick.
func (s *StreamIndicator) Start() tea.Cmd {
	s.State = StreamActive
	s.StartTime = time.Now()
	return s.spinner.Tick
}

// Tick returns the command driving the animation.
func (s StreamIndicator) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the animation while the stream is active.
func (s StreamIndicator) Update(msg tea.Msg) (StreamIndicator, tea.Cmd) {
	if s.State != StreamActive {
		return s, nil
	}
	if tickMsg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tickMsg)
		return s, cmd
	}
	return s, nil
}

// Finish settles the indicator; err decides between done and failed.
func (s *StreamIndicator) Finish(err error) {
	s.EndTime = time.Now()
	if err != nil {
		s.State = StreamFailed
		return
	}
	s.State = StreamDone
}

// View renders the indicator.
func (s StreamIndicator) View() string {
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	switch s.State {
	case StreamActive:
		return s.spinner.View() + " " + muted.Render(fmt.Sprintf("streaming (%d frames)", s.Frames))
	case StreamDone:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolComplete) + " " +
			muted.Render(fmt.Sprintf("%d frames in %s", s.Frames, formatDuration(s.Elapsed())))
	case StreamFailed:
		return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail) + " " +
			muted.Render("stream failed")
	default:
		return muted.Render(SymbolPending + " waiting")
	}
}

// Elapsed returns how long the stream ran, or has been running.
func (s StreamIndicator) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	if secs < 60 {
		return fmt.Sprintf("%.1fs", secs)
	}
	mins := int(secs / 60)
	return fmt.Sprintf("%dm%.1fs", mins, secs-float64(mins)*60)
}
