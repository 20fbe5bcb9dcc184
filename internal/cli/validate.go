package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/render"
	"github.com/rileyhilliard/genui/internal/ui"
	"github.com/rileyhilliard/genui/internal/view"
)

var validateShow bool

// validateCmd checks a complete document against the grammar
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a complete document follows the grammar",
	Long: `Parse a complete document and validate it against the node grammar.

Syntax errors and grammar violations are reported with the path of the
offending node, e.g. $.children[1].children[0].

Examples:
  genui validate form.json
  llm "a login form" | genui validate --show
  genui validate form.json --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, closeIn, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer closeIn()
		return validateDocument(in, cmd.OutOrStdout(), validateShow)
	},
}

// documentSummary counts the nodes of a document by kind.
type documentSummary struct {
	Nodes int                 `json:"nodes"`
	Kinds map[layout.Kind]int `json:"kinds"`
	View  view.Node           `json:"view"`
}

func summarize(doc layout.Node) documentSummary {
	s := documentSummary{Kinds: make(map[layout.Kind]int), View: view.Project(doc)}
	layout.Walk(doc, func(_ []int, n layout.Node) bool {
		s.Nodes++
		s.Kinds[n.Kind()]++
		return true
	})
	return s
}

func (s documentSummary) String() string {
	var parts []string
	for _, k := range layout.Kinds() {
		if n := s.Kinds[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	return fmt.Sprintf("%s (%s)", plural(s.Nodes, "node"), strings.Join(parts, ", "))
}

func validateDocument(in io.Reader, out io.Writer, show bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStream,
			"Failed to read document", "")
	}

	doc, err := layout.Materialize(string(data))
	if err != nil {
		return describeFailure(err)
	}

	summary := summarize(doc)
	if machineMode {
		return WriteJSONSuccess(out, summary)
	}

	fmt.Fprintf(out, "%s valid document: %s\n", ui.SymbolSuccess, summary)
	if show {
		r := render.NewRenderer(out, render.WithWidth(cfg.Render.Width), render.WithColor(useColor(cfg)))
		return render.NewAppender(out, r).Present(engine.Output{Version: 1, View: summary.View})
	}
	return nil
}

// describeFailure turns a materialization failure into a CLI error.
func describeFailure(err error) error {
	var f *layout.Failure
	if !stderrors.As(err, &f) {
		return err
	}
	if f.Kind == layout.KindSyntax {
		return errors.WrapWithCode(err, errors.ErrSyntax,
			"Document is not valid JSON",
			"Check for missing quotes, commas or closing brackets.")
	}
	return errors.WrapWithCode(err, errors.ErrSchema,
		"Document doesn't follow the node grammar",
		"Run 'genui schema' to see which fields each node kind takes.")
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateShow, "show", false, "render the document after validating it")
}
