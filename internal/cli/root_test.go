package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generrors "github.com/rileyhilliard/genui/internal/errors"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "genui"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("failed to present frame"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				// Can't call isUnknownCommandError with nil
				return
			}
			got := isUnknownCommandError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "genui"`),
			want: "foo",
		},
		{
			name: "subcommand typo",
			err:  errors.New(`unknown command "rendr" for "genui"`),
			want: "rendr",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "frames-list" for "genui"`),
			want: "frames-list",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractUnknownCommand(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatError(t *testing.T) {
	structured := generrors.New(generrors.ErrConfig, "Config file not found", "Run 'genui init'")
	assert.Equal(t, structured.Error(), formatError(structured))
	assert.Equal(t, "✗ boom\n", formatError(errors.New("boom")))
}

func TestLoadConfig(t *testing.T) {
	oldCfg, oldFile := cfg, cfgFile
	defer func() { cfg, cfgFile = oldCfg, oldFile }()

	dir := t.TempDir()
	path := dir + "/.genui.yaml"
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nrender:\n  policy: append\n"), 0644))

	cfgFile = path
	require.NoError(t, loadConfig())
	assert.Equal(t, "append", cfg.Render.Policy)
	assert.Equal(t, 16, cfg.Stream.ChunkSize, "unset keys keep defaults")

	require.NoError(t, os.WriteFile(path, []byte("version: 1\nrender:\n  policy: sideways\n"), 0644))
	err := loadConfig()
	require.Error(t, err)
	assert.True(t, generrors.IsCode(err, generrors.ErrConfig))
	assert.Equal(t, "append", cfg.Render.Policy, "a bad file leaves the loaded config alone")
}

func TestRootCommandsRegistered(t *testing.T) {
	for _, name := range []string{"render", "replay", "validate", "schema", "prompt", "frames", "init", "version", "completion"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSkipConfigAnnotations(t *testing.T) {
	assert.Equal(t, "true", initCmd.Annotations[skipConfig])
	assert.Equal(t, "true", versionCmd.Annotations[skipConfig])
	assert.Empty(t, renderCmd.Annotations[skipConfig])
}
