// Package initialize implements the init command: write a starter
// modtext.toml into a project.
package initialize

import (
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/filesystem"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/paths"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const header = `# modtext project configuration
#
# Each [[jobs]] entry patches one source file with one rule file and writes
# the result to target. Run 'modtext syntax' for the rule file reference.

`

// InitOptions defines the options for the Init command.
type InitOptions struct {
	// Dir is the project directory the file is written to.
	Dir string
	// Force overwrites an existing configuration file.
	Force bool
	FS    afero.Fs
}

// starter is the part of Config worth showing in a fresh project file.
type starter struct {
	Output config.Output `toml:"output"`
	Run    config.Run    `toml:"run"`
	Jobs   []config.Job  `toml:"jobs"`
}

// Init writes modtext.toml into opts.Dir.
func Init(opts InitOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.initialize")
	fs := filesystem.OrOS(opts.FS)

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	target := filepath.Join(dir, paths.ProjectConfigFiles[0])

	exists, err := afero.Exists(fs, target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot check %s", target)
	}
	if exists && !opts.Force {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s already exists, use --force to overwrite it", target)
	}

	content, err := Content()
	if err != nil {
		return nil, err
	}
	if err := filesystem.WriteFileAtomic(fs, target, content); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target).InFile(target)
	}
	log.Info().Str("path", target).Bool("overwritten", exists).Msg("wrote project configuration")

	return &types.CommandResult{
		Command: "init",
		Message: "Created [path]" + target + "[/path]",
	}, nil
}

// Content renders the starter configuration file.
func Content() ([]byte, error) {
	defaults := config.Default()
	s := starter{
		Output: defaults.Output,
		Run:    defaults.Run,
		Jobs: []config.Job{{
			Name:   "example",
			Rules:  "mods/example.mod",
			Source: "vendor/example.lua",
			Target: "build/example.lua",
		}},
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render starter configuration")
	}
	return buf.Bytes(), nil
}
