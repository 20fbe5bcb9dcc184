package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/genui/internal/source"
	"github.com/rileyhilliard/genui/internal/ui"
)

var replayFlags StreamFlags

// replayCmd plays an explicit step script
var replayCmd = &cobra.Command{
	Use:   "replay <script.jsonc>",
	Short: "Replay a scripted delta stream",
	Long: `Replay a JSONC script of deltas, resets and form submissions.

A script is either an array of steps or an object with a "steps" array.
A string step is a delta. Object steps take one of:

  {"delta": "..."}
  {"reset": true}
  {"submit": {"form": [1], "button": "ok", "values": {"q": "hello"}}}

Comments and trailing commas are allowed.

Examples:
  genui replay signup.jsonc
  genui replay signup.jsonc --policy append --delay 0s
  genui replay signup.jsonc --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return replayCommand(cmd, args[0])
	},
}

func replayCommand(cmd *cobra.Command, path string) error {
	c, err := replayFlags.Apply(cfg)
	if err != nil {
		return err
	}

	script, err := source.ReadScript(path)
	if err != nil {
		return err
	}
	if script.Description != "" && !machineMode && c.Output.Verbosity != "quiet" {
		fmt.Fprintf(os.Stderr, "%s %s\n", ui.SymbolFocus, script.Description)
	}

	run := newStreamRun(c, cmd.OutOrStdout())
	res, err := run.run(cmd.Context(), script.Steps)
	if err != nil {
		return err
	}
	return run.write(res)
}

func init() {
	rootCmd.AddCommand(replayCmd)
	AddStreamFlags(replayCmd, &replayFlags, false)
}
