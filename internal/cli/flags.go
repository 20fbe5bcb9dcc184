package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/genui/internal/config"
	"github.com/rileyhilliard/genui/internal/errors"
)

// StreamFlags holds the flags shared by render and replay. Zero values
// leave the config file's setting in place.
type StreamFlags struct {
	ChunkSize int
	Delay     string
	Policy    string
	Record    string
	Width     int
}

// AddStreamFlags registers --chunk-size, --delay, --policy, --record and
// --width on a command.
func AddStreamFlags(cmd *cobra.Command, flags *StreamFlags, chunked bool) {
	if chunked {
		cmd.Flags().IntVar(&flags.ChunkSize, "chunk-size", 0, "bytes per delta (default from config: 16)")
	}
	cmd.Flags().StringVar(&flags.Delay, "delay", "", "pause between deltas (e.g., 0s, 50ms)")
	cmd.Flags().StringVar(&flags.Policy, "policy", "", "frame policy: inplace or append")
	cmd.Flags().StringVar(&flags.Record, "record", "", "write a CBOR recording of every frame to this file")
	cmd.Flags().IntVar(&flags.Width, "width", 0, "wrap width for rendered text")
}

// Apply returns a copy of base with the flags layered on top, validated.
func (f StreamFlags) Apply(base *config.Config) (*config.Config, error) {
	merged := *base
	if f.ChunkSize != 0 {
		merged.Stream.ChunkSize = f.ChunkSize
	}
	if f.Delay != "" {
		d, err := ParseDelay(f.Delay)
		if err != nil {
			return nil, err
		}
		merged.Stream.Delay = d
	}
	if f.Policy != "" {
		merged.Render.Policy = f.Policy
	}
	if f.Record != "" {
		merged.Render.Record = config.Expand(f.Record)
	}
	if f.Width != 0 {
		merged.Render.Width = f.Width
	}
	if err := config.Validate(&merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ParseDelay parses a delay flag into a duration.
func ParseDelay(flag string) (time.Duration, error) {
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid delay", flag),
			"Try something like 0s, 30ms, or 1s.")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Delay can't be negative: %s", flag),
			"Use 0s to stream as fast as possible.")
	}
	return d, nil
}

// isTerminal reports whether f is attached to a terminal. Tests swap it.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves output.color against --no-color and the terminal.
func useColor(c *config.Config) bool {
	if noColor {
		return false
	}
	switch c.Output.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
