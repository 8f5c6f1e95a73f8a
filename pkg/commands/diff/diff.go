// Package diff implements the diff command: show what apply would change as
// a unified diff of each source against its patched output.
package diff

import (
	"context"

	"github.com/arthur-debert/modtext/pkg/commands/internal"
	"github.com/arthur-debert/modtext/pkg/config"
	textdiff "github.com/arthur-debert/modtext/pkg/diff"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
)

// DiffOptions defines the options for the Diff command.
type DiffOptions struct {
	Config   *config.Config
	Jobs     []config.Job
	FS       afero.Fs
	Observer types.Observer
}

// Diff computes the unified diff for each job. Annotation lines are part of
// the output exactly as apply would write them.
func Diff(ctx context.Context, opts DiffOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.diff")

	jobs := opts.Jobs
	if len(jobs) == 0 && opts.Config != nil {
		jobs = opts.Config.Jobs
	}
	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no jobs to diff: pass RULES SOURCE or configure [[jobs]]")
	}

	prepared, err := internal.PrepareAll(ctx, jobs, internal.Settings{
		Config:   opts.Config,
		FS:       opts.FS,
		Observer: opts.Observer,
	})
	if err != nil {
		return nil, err
	}

	result := &types.CommandResult{Command: "diff", DryRun: true}
	for _, p := range prepared {
		toName := p.Job.Target
		if toName == "" {
			toName = p.Job.Source
		}
		d := textdiff.Compare(p.Job.Source, toName, p.Result.SourceLines, p.Result.Output)
		log.Debug().Str("source", p.Job.Source).Int("added", d.Added).Msg("diff computed")
		result.Diffs = append(result.Diffs, types.DiffReport{
			Source:  p.Job.Source,
			Added:   d.Added,
			Removed: d.Removed,
			Unified: d.Unified,
		})
	}
	return result, nil
}
