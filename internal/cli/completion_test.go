package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionIncludesBuiltinCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")
	assert.Contains(t, output, "__start_genui", "should have start function")
	assert.Contains(t, output, "_genui_root_command", "should have root command function")

	// Commands with local flags get their own functions.
	assert.Contains(t, output, "_genui_render()")
	assert.Contains(t, output, "_genui_replay()")
	assert.Contains(t, output, "_genui_completion()")
}

func TestCompletionCommand(t *testing.T) {
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)

	for _, shell := range completionCmd.ValidArgs {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			completionCmd.SetOut(&buf)
			defer completionCmd.SetOut(nil)

			require.NoError(t, completionCmd.RunE(completionCmd, []string{shell}))
			assert.NotEmpty(t, buf.String())
		})
	}
}
