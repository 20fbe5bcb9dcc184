package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/genui/internal/errors"
)

// MaxChunkSize caps stream.chunk_size.
const MaxChunkSize = 1 << 20

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but genui only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade genui or lower the version in .genui.yaml.")
	}

	if err := validateStream(cfg.Stream); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'stream' section in your .genui.yaml.")
	}

	if err := validateRender(cfg.Render); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'render' section in your .genui.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .genui.yaml.")
	}

	return nil
}

func validateStream(s StreamConfig) error {
	if s.ChunkSize < 1 || s.ChunkSize > MaxChunkSize {
		return fmt.Errorf("stream.chunk_size must be between 1 and %d, got %d", MaxChunkSize, s.ChunkSize)
	}
	if s.Delay < 0 {
		return fmt.Errorf("stream.delay can't be negative, got %s", s.Delay)
	}
	return nil
}

func validateRender(r RenderConfig) error {
	switch r.Policy {
	case PolicyInPlace, PolicyAppend:
	default:
		return fmt.Errorf("render.policy must be '%s' or '%s', got '%s'", PolicyInPlace, PolicyAppend, r.Policy)
	}
	if r.Width < 20 {
		return fmt.Errorf("render.width must be at least 20, got %d", r.Width)
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	validColors := []string{"auto", "always", "never"}
	if out.Color != "" && !contains(validColors, out.Color) {
		return fmt.Errorf("output.color must be one of %s, got '%s'", strings.Join(validColors, ", "), out.Color)
	}

	validVerbosity := []string{"quiet", "normal", "verbose"}
	if out.Verbosity != "" && !contains(validVerbosity, out.Verbosity) {
		return fmt.Errorf("output.verbosity must be one of %s, got '%s'", strings.Join(validVerbosity, ", "), out.Verbosity)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
