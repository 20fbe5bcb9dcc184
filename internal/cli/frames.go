package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/render"
	"github.com/rileyhilliard/genui/internal/view"
)

var framesRender bool

// framesCmd inspects a CBOR frame recording
var framesCmd = &cobra.Command{
	Use:   "frames <recording.cbor>",
	Short: "List or replay the frames of a recording",
	Long: `Read a recording written with --record and list its frames, or print
every frame again with --render.

Examples:
  genui frames frames.cbor
  genui frames frames.cbor --render
  genui frames frames.cbor --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrRender,
				"Couldn't open recording "+args[0],
				"Record one with 'genui render --record <file>'.")
		}
		defer f.Close()

		records, err := render.ReadRecords(f)
		if err != nil {
			return err
		}
		return writeFrames(cmd.OutOrStdout(), records, framesRender)
	},
}

func writeFrames(w io.Writer, records []render.Record, replay bool) error {
	if machineMode {
		return WriteJSONSuccess(w, records)
	}

	if replay {
		r := render.NewRenderer(w, render.WithWidth(cfg.Render.Width), render.WithColor(useColor(cfg)))
		a := render.NewAppender(w, r)
		for _, rec := range records {
			var err error
			if rec.Reset {
				err = a.Clear()
			} else if rec.Output != nil {
				err = a.Present(*rec.Output)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	for i, rec := range records {
		if rec.Reset || rec.Output == nil {
			fmt.Fprintf(w, "%4d  reset\n", i+1)
			continue
		}
		state := "settled"
		if rec.Output.Optimistic {
			state = "optimistic"
		}
		fmt.Fprintf(w, "%4d  v%-4d %-10s %s\n", i+1, rec.Output.Version, state, plural(countNodes(rec.Output.View), "node"))
	}
	return nil
}

func countNodes(v view.Node) int {
	n := 0
	view.Walk(v, func([]int, view.Node) bool {
		n++
		return true
	})
	return n
}

func init() {
	rootCmd.AddCommand(framesCmd)
	framesCmd.Flags().BoolVar(&framesRender, "render", false, "print every recorded frame")
}

// plural formats a count with its noun: "1 node", "3 nodes".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
