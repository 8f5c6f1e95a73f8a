// Package check implements the check command: resolve every job without
// writing anything.
package check

import (
	"context"

	"github.com/arthur-debert/modtext/pkg/commands/internal"
	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
)

// CheckOptions defines the options for the Check command.
type CheckOptions struct {
	Config *config.Config
	// Jobs to check. When empty the jobs of Config are used. Target may be
	// empty since nothing is written.
	Jobs     []config.Job
	FS       afero.Fs
	Observer types.Observer
}

// Check reports the insertions each job would make.
func Check(ctx context.Context, opts CheckOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.check")

	jobs := opts.Jobs
	if len(jobs) == 0 && opts.Config != nil {
		jobs = opts.Config.Jobs
	}
	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no jobs to check: pass RULES SOURCE or configure [[jobs]]")
	}
	log.Debug().Int("jobs", len(jobs)).Msg("Executing command")

	prepared, err := internal.PrepareAll(ctx, jobs, internal.Settings{
		Config:   opts.Config,
		FS:       opts.FS,
		Observer: opts.Observer,
	})
	if err != nil {
		return nil, err
	}

	result := &types.CommandResult{Command: "check", DryRun: true}
	for _, p := range prepared {
		result.Jobs = append(result.Jobs, internal.Report(p))
	}
	result.Message = "[success]all rules resolve[/success]"
	return result, nil
}
