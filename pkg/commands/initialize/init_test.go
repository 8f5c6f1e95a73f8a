// pkg/commands/initialize/init_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: in-memory filesystem
// PURPOSE: Test the starter configuration and overwrite protection

package initialize_test

import (
	"testing"

	"github.com/arthur-debert/modtext/pkg/commands/initialize"
	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/testutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentIsValidConfig(t *testing.T) {
	content, err := initialize.Content()
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, toml.Unmarshal(content, &cfg))
	assert.Equal(t, "lf", cfg.Output.Newline)
	assert.Equal(t, 4, cfg.Run.Parallelism)
	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, "example", cfg.Jobs[0].Name)
	assert.NoError(t, cfg.Validate())
}

func TestInit(t *testing.T) {
	p := testutil.NewProject(t)

	result, err := initialize.Init(initialize.InitOptions{Dir: p.Root, FS: p.FS})
	require.NoError(t, err)
	assert.Equal(t, "init", result.Command)

	data, err := afero.ReadFile(p.FS, p.Path("modtext.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[jobs]]")

	t.Run("refuses_to_overwrite", func(t *testing.T) {
		_, err := initialize.Init(initialize.InitOptions{Dir: p.Root, FS: p.FS})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("force_overwrites", func(t *testing.T) {
		p.AddFile(t, "modtext.toml", "garbage")
		_, err := initialize.Init(initialize.InitOptions{Dir: p.Root, FS: p.FS, Force: true})
		require.NoError(t, err)

		data, err := afero.ReadFile(p.FS, p.Path("modtext.toml"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "garbage")
	})
}
