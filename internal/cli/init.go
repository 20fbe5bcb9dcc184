package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/genui/internal/config"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/ui"
)

var (
	initForce          bool
	initNonInteractive bool
)

// initCmd creates a new .genui.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .genui.yaml configuration",
	Long: `Initialize a genui configuration file in the current directory.

Asks how frames should be shown and how documents are streamed, then
writes .genui.yaml. Use --defaults to skip the questions.

Examples:
  genui init
  genui init --defaults
  genui init --force`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Overwrite:      initForce,
			NonInteractive: initNonInteractive || !isTerminal(os.Stdin),
		})
	},
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write to, default "."
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// initAnswers are the values asked for by the init form.
type initAnswers struct {
	policy    string
	chunkSize string
	delay     string
	record    string
}

// Init creates a new .genui.yaml configuration file.
func Init(out io.Writer, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		answers := defaultAnswers(cfg)
		if err := initForm(&answers).Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Run 'genui init --defaults' to skip the questions")
		}
		if err := answers.apply(cfg); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Created %s\n", ui.SymbolSuccess, configPath)
	return nil
}

func defaultAnswers(cfg *config.Config) initAnswers {
	return initAnswers{
		policy:    cfg.Render.Policy,
		chunkSize: strconv.Itoa(cfg.Stream.ChunkSize),
		delay:     cfg.Stream.Delay.String(),
		record:    cfg.Render.Record,
	}
}

func initForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How should frames be shown?").
				Options(
					huh.NewOption("In place (one live view)", config.PolicyInPlace),
					huh.NewOption("Append (a snapshot per frame)", config.PolicyAppend),
				).
				Value(&a.policy),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Delta size in bytes").
				Description("How much of a document each delta carries when streaming a file").
				Value(&a.chunkSize).
				Validate(func(s string) error {
					_, err := parseChunkSize(s)
					return err
				}),
			huh.NewInput().
				Title("Delay between deltas").
				Placeholder("30ms").
				Value(&a.delay).
				Validate(func(s string) error {
					_, err := ParseDelay(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Record frames to (optional)").
				Description("Path of a CBOR recording written on every run (supports ~ and ${HOME})").
				Placeholder("leave empty to skip").
				Value(&a.record),
		),
	)
}

// apply copies the answers onto cfg.
func (a initAnswers) apply(cfg *config.Config) error {
	size, err := parseChunkSize(a.chunkSize)
	if err != nil {
		return err
	}
	delay, err := ParseDelay(a.delay)
	if err != nil {
		return err
	}
	cfg.Render.Policy = a.policy
	cfg.Stream.ChunkSize = size
	cfg.Stream.Delay = delay
	cfg.Render.Record = a.record
	return nil
}

func parseChunkSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > config.MaxChunkSize {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid delta size", s),
			fmt.Sprintf("Use a whole number between 1 and %d.", config.MaxChunkSize))
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "defaults", false, "write the defaults without asking")
}
