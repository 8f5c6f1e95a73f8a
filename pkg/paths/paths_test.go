// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test root discovery, XDG directories and path resolution

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ types.Pather = (*Paths)(nil)

func TestNew(t *testing.T) {
	t.Run("explicit_root", func(t *testing.T) {
		root := t.TempDir()
		p, err := New(root)
		require.NoError(t, err)
		assert.Equal(t, root, p.WorkDir())
		assert.False(t, p.UsedFallback())
	})

	t.Run("root_from_env", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv(EnvRoot, root)
		p, err := New("")
		require.NoError(t, err)
		assert.Equal(t, root, p.WorkDir())
	})

	t.Run("config_dir_override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)
		p, err := New(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, dir, p.ConfigDir())
		assert.Equal(t, filepath.Join(dir, "config.toml"), p.UserConfigPath())
	})

	t.Run("state_dir_from_xdg", func(t *testing.T) {
		state := t.TempDir()
		t.Setenv("XDG_STATE_HOME", state)
		p, err := New(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(state, "modtext"), p.StateDir())
		assert.Equal(t, filepath.Join(state, "modtext", "modtext.log"), p.LogFilePath())
	})
}

func TestProjectConfigPath(t *testing.T) {
	root := t.TempDir()
	p, err := New(root)
	require.NoError(t, err)
	assert.Empty(t, p.ProjectConfigPath())

	require.NoError(t, os.WriteFile(filepath.Join(root, ".modtext.toml"), nil, 0644))
	assert.Equal(t, filepath.Join(root, ".modtext.toml"), p.ProjectConfigPath())

	require.NoError(t, os.WriteFile(filepath.Join(root, "modtext.toml"), nil, 0644))
	assert.Equal(t, filepath.Join(root, "modtext.toml"), p.ProjectConfigPath())
}

func TestResolve(t *testing.T) {
	p, err := New("/project")
	require.NoError(t, err)

	assert.Equal(t, "/project/mods/chat.mod", p.Resolve("mods/chat.mod"))
	assert.Equal(t, "/abs/file", p.Resolve("/abs/file"))
	assert.Equal(t, "", p.Resolve(""))

	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/x", ExpandHome("~/x"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "/home/tester/mods/x.mod", p.Resolve("~/mods/x.mod"))
}
