package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/source"
)

var renderFlags StreamFlags

// renderCmd streams a document through a session in fixed-size deltas
var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Stream a JSON document and render every frame",
	Long: `Read a generative UI document from a file or stdin, cut it into deltas,
and feed them through a rendering session one by one.

With the inplace policy on a terminal the view is redrawn on every frame
and forms can be filled in while the document is still arriving. With the
append policy, or when output is piped, every frame is printed as its own
snapshot and any unsubmitted form is asked for once the stream ends.

Submitted forms are printed as YAML.

Examples:
  genui render form.json
  llm "a login form" | genui render
  genui render form.json --policy append --chunk-size 4 --delay 0s
  genui render form.json --record frames.cbor`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderCommand(cmd, args)
	},
}

func renderCommand(cmd *cobra.Command, args []string) error {
	c, err := renderFlags.Apply(cfg)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	deltas, err := source.ReadChunks(in, c.Stream.ChunkSize)
	if err != nil {
		return err
	}

	run := newStreamRun(c, cmd.OutOrStdout())
	res, err := run.run(cmd.Context(), source.Deltas(deltas))
	if err != nil {
		return err
	}
	return run.write(res)
}

// openInput returns the named file, or stdin when there is no argument
// or the argument is "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrStream,
			"Couldn't open "+args[0],
			"Check the path, or pipe the document on stdin.")
	}
	return f, func() { f.Close() }, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	AddStreamFlags(renderCmd, &renderFlags, true)
}
