package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/genui/internal/engine"
)

// Appender is a sink that writes a new snapshot for every frame, one
// below the other, so the full history stays in the terminal scrollback.
type Appender struct {
	w io.Writer
	r *Renderer
}

// NewAppender creates an append-policy sink writing to w.
func NewAppender(w io.Writer, r *Renderer) *Appender {
	if r == nil {
		r = NewRenderer(w)
	}
	return &Appender{w: w, r: r}
}

// Present writes the header line and the rendered view.
//
//	── v3 ──────────────
//	hello
//	◐ streaming...
func (a *Appender) Present(out engine.Output) error {
	var b strings.Builder
	b.WriteString(a.header(fmt.Sprintf("v%d", out.Version)))
	b.WriteString("\n")
	if body := a.r.Render(out.View, nil); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	if out.Optimistic {
		b.WriteString(a.r.Streaming())
		b.WriteString("\n")
	}
	_, err := io.WriteString(a.w, b.String())
	return err
}

// Clear marks the start of a new document. Earlier snapshots are part of
// the scrollback and are left alone.
func (a *Appender) Clear() error {
	_, err := io.WriteString(a.w, a.header("reset")+"\n")
	return err
}

func (a *Appender) header(title string) string {
	line := "── " + title + " "
	if pad := a.r.Width() - len([]rune(line)); pad > 0 {
		line += strings.Repeat("─", pad)
	}
	return a.r.muted.Render(line)
}
