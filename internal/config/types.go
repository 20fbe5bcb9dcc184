package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Sink policies.
const (
	PolicyInPlace = "inplace"
	PolicyAppend  = "append"
)

// Config represents the complete .genui.yaml configuration file.
type Config struct {
	Version int          `yaml:"version" mapstructure:"version"`
	Stream  StreamConfig `yaml:"stream" mapstructure:"stream"`
	Render  RenderConfig `yaml:"render" mapstructure:"render"`
	Output  OutputConfig `yaml:"output" mapstructure:"output"`
	Prompt  PromptConfig `yaml:"prompt" mapstructure:"prompt"`
}

// StreamConfig controls how documents are cut into deltas when a complete
// file is streamed.
type StreamConfig struct {
	// ChunkSize is the size of each delta in bytes.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// Delay is the pause between deltas.
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`
}

// RenderConfig controls how frames are shown.
type RenderConfig struct {
	// Policy is "inplace" (one live view, replaced on every frame) or
	// "append" (a new snapshot per frame). Inplace falls back to append
	// when stdout is not a terminal.
	Policy string `yaml:"policy" mapstructure:"policy"`

	// Record is a path that receives a CBOR recording of every frame.
	// Supports ${HOME}, ${USER}, ${PWD} and ~.
	Record string `yaml:"record" mapstructure:"record"`

	// Width is the wrap width for rendered text.
	Width int `yaml:"width" mapstructure:"width"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Verbosity level: "quiet", "normal", or "verbose".
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity"`
}

// PromptConfig customizes the generated system prompt.
type PromptConfig struct {
	// Preamble is placed before the grammar description.
	Preamble string `yaml:"preamble" mapstructure:"preamble"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Stream: StreamConfig{
			ChunkSize: 16,
			Delay:     30 * time.Millisecond,
		},
		Render: RenderConfig{
			Policy: PolicyInPlace,
			Width:  80,
		},
		Output: OutputConfig{
			Color:     "auto",
			Verbosity: "normal",
		},
	}
}
