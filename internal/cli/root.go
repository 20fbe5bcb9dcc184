package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/genui/internal/config"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/logger"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// cfg is loaded by PersistentPreRunE for every command that needs it.
var cfg = config.DefaultConfig()

// skipConfig marks commands that must work without a readable config.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "genui",
	Short: "genui - Render streamed generative UI documents",
	Long: `genui renders user interfaces that a language model streams as JSON.

Every delta is checked for closability. When the partial document can be
finished by appending closers it is rendered right away as an optimistic
frame, and the view is replaced as more of the document arrives.

Examples:
  llm "make me a signup form" | genui render
  genui render form.json --policy append
  genui replay session.jsonc
  genui prompt > system.md`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.EnableDebug(true)
		}
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		return loadConfig()
	},
}

// loadConfig resolves the config file for the current directory and
// validates it.
func loadConfig() error {
	loaded, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	if loaded.Output.Verbosity == "verbose" {
		logger.EnableDebug(true)
	}
	if path != "" {
		logger.NewEnvLogger("[config]").Debug("loaded %s", path)
	}
	cfg = loaded
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if isUnknownCommandError(err) {
			msg := "Unrecognized command line"
			if name := extractUnknownCommand(err); name != "" {
				msg = fmt.Sprintf("'%s' isn't a genui command", name)
			}
			err = errors.WrapWithCode(err, errors.ErrConfig, msg,
				"Run 'genui --help' to see the available commands and flags.")
		}
		if machineMode {
			_ = WriteJSONFromError(os.Stdout, err)
		} else {
			fmt.Fprint(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}

// formatError renders structured errors as-is and plain ones with the
// same failure marker.
func formatError(err error) string {
	if _, ok := err.(*errors.Error); ok {
		return err.Error()
	}
	return fmt.Sprintf("✗ %s\n", err.Error())
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "foo" for "genui"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .genui.yaml in the project)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print engine decisions to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}
