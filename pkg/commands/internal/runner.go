// Package internal holds the job pipeline shared by the commands: parse the
// rule file, load the source, plan and merge, for many jobs at once.
package internal

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/patch"
	"github.com/arthur-debert/modtext/pkg/ruleset"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Settings are shared by every job of one command run.
type Settings struct {
	Config   *config.Config
	FS       afero.Fs
	Observer types.Observer
}

func (s Settings) config() *config.Config {
	if s.Config == nil {
		return config.Default()
	}
	return s.Config
}

// Prepared is a job whose output has been computed but not written.
type Prepared struct {
	Job     config.Job
	RuleSet *ruleset.RuleSet
	Result  *patch.Result
}

// ParseRules parses a rule file with the configured encoding and header
// comment prefixes.
func ParseRules(path string, s Settings) (*ruleset.RuleSet, error) {
	cfg := s.config()
	return ruleset.ParseFile(path, ruleset.Options{
		FS:              s.FS,
		Encoding:        cfg.Output.Encoding,
		CommentPrefixes: cfg.Comments.Header,
		Observer:        s.Observer,
	})
}

// FileOptions returns the patch options for job.
func FileOptions(job config.Job, s Settings) patch.FileOptions {
	cfg := s.config()
	opts := patch.FileOptions{
		FS:       s.FS,
		Encoding: cfg.Output.Encoding,
		Newline:  cfg.Newline(),
		Observer: s.Observer,
	}
	if cfg.Output.Annotate {
		prefix := job.CommentPrefix
		if prefix == "" {
			prefix = cfg.CommentPrefixFor(commentPath(job))
		}
		if prefix != "" {
			opts.Annotator = patch.CommentAnnotator{Prefix: prefix}
		}
	}
	return opts
}

// commentPath picks the file whose type decides the comment syntax.
func commentPath(job config.Job) string {
	if job.Target != "" {
		return job.Target
	}
	return job.Source
}

// Prepare parses, resolves and merges one job without writing anything.
func Prepare(job config.Job, s Settings) (*Prepared, error) {
	rs, err := ParseRules(job.Rules, s)
	if err != nil {
		return nil, err
	}
	result, err := patch.Prepare(rs, job.Source, FileOptions(job, s))
	if err != nil {
		return nil, err
	}
	result.TargetPath = job.Target
	return &Prepared{Job: job, RuleSet: rs, Result: result}, nil
}

// PrepareAll prepares jobs concurrently, at most run.parallelism at a time.
// When several jobs fail, the error of the first failing job in list order is
// returned, so reports do not depend on scheduling.
func PrepareAll(ctx context.Context, jobs []config.Job, s Settings) ([]*Prepared, error) {
	logger := logging.GetLogger("commands.internal")
	defer logging.LogOperationStart(logger, "prepare")()
	prepared := make([]*Prepared, len(jobs))
	errs := make([]error, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config().Run.Parallelism)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			logger.Debug().Str("job", job.Label()).Msg("preparing job")
			prepared[i], errs[i] = Prepare(job, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err != nil {
			logger.Debug().Str("job", jobs[i].Label()).Err(err).Msg("job failed")
			return nil, err
		}
	}
	return prepared, nil
}

// WriteAll writes every prepared job to its target concurrently.
func WriteAll(ctx context.Context, prepared []*Prepared, s Settings) error {
	defer logging.LogOperationStart(logging.GetLogger("commands.internal"), "write")()
	var mu sync.Mutex
	var firstIndex = len(prepared)
	var firstErr error

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.config().Run.Parallelism)
	for i, p := range prepared {
		g.Go(func() error {
			err := p.Result.Write(p.Job.Target, FileOptions(p.Job, s))
			if err != nil {
				mu.Lock()
				if i < firstIndex {
					firstIndex, firstErr = i, err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return firstErr
}

// Report summarizes a prepared job.
func Report(p *Prepared) types.JobReport {
	res := p.Result
	report := types.JobReport{
		Name:        p.Job.Label(),
		Rules:       p.Job.Rules,
		Source:      p.Job.Source,
		Target:      p.Job.Target,
		SourceLines: len(res.SourceLines),
		OutputLines: len(res.Output),
		Written:     res.Written,
		Insertions:  []types.InsertionReport{},
	}
	if report.Name == "" {
		report.Name = p.Job.Source
	}
	for _, ins := range res.Plan.Insertions() {
		item := types.InsertionReport{
			Mod:   ins.Mod.Description,
			Line:  ins.Index + 1,
			Lines: len(ins.Lines),
		}
		if ins.Index < len(res.SourceLines) {
			item.Before = strings.TrimRight(res.SourceLines[ins.Index], " \t")
		} else {
			item.AtEnd = true
		}
		report.Insertions = append(report.Insertions, item)
	}
	return report
}
