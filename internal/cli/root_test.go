package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/app"
)

func stubTUI(t *testing.T) *int {
	t.Helper()
	calls := 0
	orig := launchTUIFunc
	launchTUIFunc = func(*app.Container) error {
		calls++
		return nil
	}
	t.Cleanup(func() { launchTUIFunc = orig })
	return &calls
}

func TestRootCommand_NoArgsLaunchesTUI(t *testing.T) {
	calls := stubTUI(t)
	env := newTestEnv(t)

	_, err := env.run(t)

	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestRootCommand_HelpDoesNotLaunchTUI(t *testing.T) {
	calls := stubTUI(t)
	env := newTestEnv(t)

	out, err := env.run(t, "--help")

	require.NoError(t, err)
	assert.Equal(t, 0, *calls)
	assert.Contains(t, out, "Board Commands:")
	assert.Contains(t, out, "Page Commands:")
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand(nil, "test")

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"init", "config", "serve", "board", "card", "column", "tui", "page"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_PrintsConfigWarnings(t *testing.T) {
	stubTUI(t)
	env := newTestEnv(t)
	env.c.AppConfig.Warnings = []string{"unknown key: board.colour"}

	cmd := NewRootCommand(env.c, "test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"board"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "Warning: unknown key: board.colour")
}

func TestInitCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized salesdeck in "+env.c.Config.DataDir)
	assert.DirExists(t, filepath.Join(env.c.Config.DataDir, "logs"))
	assert.Len(t, env.storeInit.Columns, len(env.c.AppConfig.BoardColumns()))

	out, err = env.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
}
