// Package apply implements the apply command: patch every job's source with
// its rule file and write the targets.
package apply

import (
	"context"

	"github.com/arthur-debert/modtext/pkg/commands/internal"
	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
)

// ApplyOptions defines the options for the Apply command.
type ApplyOptions struct {
	// Config supplies output and run settings. Nil means the built-in defaults.
	Config *config.Config
	// Jobs to run. When empty the jobs of Config are used.
	Jobs []config.Job
	// FS is the filesystem to read and write. Nil means the OS filesystem.
	FS afero.Fs
	// DryRun computes every output without writing any target.
	DryRun bool
	// Observer receives progress events.
	Observer types.Observer
}

// Apply patches every job. All jobs are resolved before the first target is
// written, so a failing job leaves every target untouched.
func Apply(ctx context.Context, opts ApplyOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.apply")
	settings := internal.Settings{Config: opts.Config, FS: opts.FS, Observer: opts.Observer}

	jobs := opts.Jobs
	if len(jobs) == 0 && opts.Config != nil {
		jobs = opts.Config.Jobs
	}
	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no jobs to apply: pass RULES SOURCE TARGET or configure [[jobs]]")
	}
	for _, job := range jobs {
		if job.Target == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "job %s has no target", job.Label())
		}
	}
	log.Debug().Int("jobs", len(jobs)).Bool("dryRun", opts.DryRun).Msg("Executing command")

	prepared, err := internal.PrepareAll(ctx, jobs, settings)
	if err != nil {
		return nil, err
	}
	if !opts.DryRun {
		if err := internal.WriteAll(ctx, prepared, settings); err != nil {
			return nil, err
		}
	}

	result := &types.CommandResult{Command: "apply", DryRun: opts.DryRun}
	for _, p := range prepared {
		result.Jobs = append(result.Jobs, internal.Report(p))
	}
	log.Info().Int("jobs", len(result.Jobs)).Msg("apply finished")
	return result, nil
}
