package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/layout"
	"github.com/rileyhilliard/genui/internal/prompt"
)

var (
	schemaFormat   string
	promptPreamble string
)

// schemaCmd prints the JSON Schema of the node grammar
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the node grammar",
	Long: `Print a JSON Schema describing every node kind, for model providers
that constrain generation with structured output.

Examples:
  genui schema
  genui schema --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSchema(cmd.OutOrStdout(), schemaFormat)
	},
}

// promptCmd prints the system prompt
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print a system prompt that teaches a model the grammar",
	Long: `Print a system prompt describing each node kind, its fields, and an
example document. The preamble comes from --preamble or prompt.preamble
in .genui.yaml.

Examples:
  genui prompt
  genui prompt --preamble "You design onboarding screens."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		preamble := cfg.Prompt.Preamble
		if cmd.Flags().Changed("preamble") {
			preamble = promptPreamble
		}
		text := prompt.Generate(preamble)
		if machineMode {
			return WriteJSONSuccess(cmd.OutOrStdout(), map[string]string{"prompt": text})
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	},
}

func writeSchema(w io.Writer, format string) error {
	schema := layout.JSONSchema()

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(schema, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(schema)
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown schema format '%s'", format),
			"Use --format json or --format yaml.")
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSchema, "Failed to encode schema", "")
	}
	_, err = w.Write(data)
	return err
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(promptCmd)
	schemaCmd.Flags().StringVar(&schemaFormat, "format", "json", "output format: json or yaml")
	promptCmd.Flags().StringVar(&promptPreamble, "preamble", "", "text placed before the grammar description")
}
