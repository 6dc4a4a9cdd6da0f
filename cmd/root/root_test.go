package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fintrack/cmd/root"
	"fintrack/internal/container"
	"fintrack/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	cmd := root.NewCommand()
	assert.Equal(t, "fintrack", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE)
	for _, name := range []string{"config", "data-dir", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommand_ContainerReachesSubcommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	var got *container.Container
	cmd := root.NewCommand(container.WithLogger(logging.NewMockLogger()))
	cmd.AddCommand(&cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			got = c
			return err
		},
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--data-dir", dir, "--log-level", "debug", "probe"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, got)
	assert.Equal(t, dir, got.GetConfig().Data.Directory)
	assert.Equal(t, "debug", got.GetConfig().Log.Level)
}

func TestContainerFrom_Uninitialized(t *testing.T) {
	_, err := root.ContainerFrom(&cobra.Command{})
	assert.Error(t, err)
}

func TestBuild_ConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("planner:\n  window_days: 14\n"), 0o600))

	c, err := root.Build(&root.Flags{ConfigFile: cfgPath, DataDir: dir}, container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.Equal(t, 14, c.GetConfig().Planner.WindowDays)
}

func TestBuild_BadConfigFile(t *testing.T) {
	_, err := root.Build(&root.Flags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
