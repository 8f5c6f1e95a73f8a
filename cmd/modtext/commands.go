package modtext

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/modtext/pkg/commands"
	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/paths"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// project is the configuration a command runs with.
type project struct {
	paths  *paths.Paths
	config *config.Config
	// baseDir resolves relative paths of configured jobs
	baseDir string
}

// loadProject locates the project root and loads the layered configuration,
// with overrides from command line flags applied last.
func loadProject(opts *globalOptions, overrides map[string]interface{}) (*project, error) {
	p, err := paths.New(opts.root)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	if p.UsedFallback() {
		log.Debug().Str("root", p.WorkDir()).Msg("no project root found, using the working directory")
	}

	file := opts.configFile
	if file != "" {
		file, err = filepath.Abs(file)
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(config.LoadOptions{Paths: p, File: file, Overrides: overrides})
	if err != nil {
		return nil, err
	}

	baseDir := p.WorkDir()
	if file != "" {
		baseDir = filepath.Dir(file)
	}
	return &project{paths: p, config: cfg, baseDir: baseDir}, nil
}

// resolve makes a configured path absolute. Paths from a --config file
// outside the root resolve against that file's directory.
func (p *project) resolve(path string) string {
	if p.baseDir == p.paths.WorkDir() {
		return p.paths.Resolve(path)
	}
	path = paths.ExpandHome(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.baseDir, path)
}

// configuredJobs returns the project jobs, restricted to names when given,
// with their paths made absolute.
func (p *project) configuredJobs(names []string) ([]config.Job, error) {
	selected := p.config.Jobs
	if len(names) > 0 {
		byName := make(map[string]config.Job, len(p.config.Jobs))
		for _, job := range p.config.Jobs {
			byName[job.Name] = job
		}
		selected = nil
		for _, name := range names {
			job, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf(MsgErrUnknownJob, name)
			}
			selected = append(selected, job)
		}
	}

	jobs := make([]config.Job, 0, len(selected))
	for _, job := range selected {
		job.Rules = p.resolve(job.Rules)
		job.Source = p.resolve(job.Source)
		job.Target = p.resolve(job.Target)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// jobFlags are the flags of the commands that run jobs.
type jobFlags struct {
	jobs          []string
	annotate      bool
	noAnnotate    bool
	commentPrefix string
	newline       string
	encoding      string
	parallel      int
	dryRun        bool
}

func (f *jobFlags) bind(cmd *cobra.Command, writes bool) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.jobs, "job", "j", nil, MsgFlagJob)
	flags.BoolVar(&f.annotate, "annotate", false, MsgFlagAnnotate)
	flags.BoolVar(&f.noAnnotate, "no-annotate", false, MsgFlagNoAnnotate)
	flags.StringVar(&f.commentPrefix, "comment-prefix", "", MsgFlagCommentPrefix)
	flags.StringVar(&f.encoding, "encoding", "", MsgFlagEncoding)
	flags.IntVarP(&f.parallel, "parallel", "p", 0, MsgFlagParallel)
	if writes {
		flags.StringVar(&f.newline, "newline", "", MsgFlagNewline)
		flags.BoolVarP(&f.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	}
}

// overrides turns the flags that were set into configuration keys.
func (f *jobFlags) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	flags := cmd.Flags()
	if f.annotate && f.noAnnotate {
		return nil, fmt.Errorf(MsgErrAnnotateBoth)
	}

	values := map[string]interface{}{}
	if flags.Changed("annotate") {
		values["output.annotate"] = f.annotate
	}
	if flags.Changed("no-annotate") {
		values["output.annotate"] = !f.noAnnotate
	}
	if flags.Changed("encoding") {
		values["output.encoding"] = f.encoding
	}
	if flags.Changed("newline") {
		values["output.newline"] = f.newline
	}
	if flags.Changed("parallel") {
		values["run.parallelism"] = f.parallel
	}
	return values, nil
}

// jobsFor builds the job list from positional arguments or, when there are
// none, from the configuration.
func (f *jobFlags) jobsFor(p *project, args []string, needTarget bool) ([]config.Job, error) {
	var jobs []config.Job
	switch {
	case len(args) == 0:
		var err error
		if jobs, err = p.configuredJobs(f.jobs); err != nil {
			return nil, err
		}
	case len(args) == 3 || (len(args) == 2 && !needTarget):
		job := config.Job{Rules: args[0], Source: args[1]}
		if len(args) == 3 {
			job.Target = args[2]
		}
		for _, path := range []*string{&job.Rules, &job.Source, &job.Target} {
			if *path == "" {
				continue
			}
			abs, err := filepath.Abs(*path)
			if err != nil {
				return nil, err
			}
			*path = abs
		}
		jobs = []config.Job{job}
	default:
		usage := "RULES SOURCE [TARGET] or no arguments"
		if needTarget {
			usage = "RULES SOURCE TARGET or no arguments"
		}
		return nil, fmt.Errorf(MsgErrArgCount, usage, len(args))
	}

	if f.commentPrefix != "" {
		for i := range jobs {
			jobs[i].CommentPrefix = f.commentPrefix
		}
	}
	return jobs, nil
}

// prepare loads the project and the jobs of a job-running command.
func (f *jobFlags) prepare(cmd *cobra.Command, opts *globalOptions, args []string, needTarget bool) (*project, []config.Job, error) {
	overrides, err := f.overrides(cmd)
	if err != nil {
		return nil, nil, err
	}
	p, err := loadProject(opts, overrides)
	if err != nil {
		return nil, nil, err
	}
	jobs, err := f.jobsFor(p, args, needTarget)
	if err != nil {
		return nil, nil, err
	}
	return p, jobs, nil
}

func traceObserver() types.Observer {
	return logging.NewTraceObserver(logging.GetLogger("trace"))
}

func render(cmd *cobra.Command, opts *globalOptions, result *types.CommandResult) error {
	renderer, err := newRenderer(cmd, opts)
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newApplyCmd(opts *globalOptions) *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:     "apply [RULES SOURCE TARGET]",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, jobs, err := flags.prepare(cmd, opts, args, true)
			if err != nil {
				return err
			}
			log.Info().Int("jobs", len(jobs)).Bool("dry_run", flags.dryRun).Msg("Applying mods")

			result, err := commands.Apply(cmd.Context(), commands.ApplyOptions{
				Config:   p.config,
				Jobs:     jobs,
				DryRun:   flags.dryRun,
				Observer: traceObserver(),
			})
			if err != nil {
				return err
			}
			if flags.dryRun {
				result.Message = MsgDryRunNotice
			}
			return render(cmd, opts, result)
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:     "check [RULES SOURCE [TARGET]]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, jobs, err := flags.prepare(cmd, opts, args, false)
			if err != nil {
				return err
			}
			result, err := commands.Check(cmd.Context(), commands.CheckOptions{
				Config:   p.config,
				Jobs:     jobs,
				Observer: traceObserver(),
			})
			if err != nil {
				return err
			}
			return render(cmd, opts, result)
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func newDiffCmd(opts *globalOptions) *cobra.Command {
	flags := &jobFlags{}
	cmd := &cobra.Command{
		Use:     "diff [RULES SOURCE [TARGET]]",
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, jobs, err := flags.prepare(cmd, opts, args, false)
			if err != nil {
				return err
			}
			result, err := commands.Diff(cmd.Context(), commands.DiffOptions{
				Config:   p.config,
				Jobs:     jobs,
				Observer: traceObserver(),
			})
			if err != nil {
				return err
			}
			return render(cmd, opts, result)
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func newInspectCmd(opts *globalOptions) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:     "inspect [RULES...]",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("encoding") {
				overrides["output.encoding"] = encoding
			}
			p, err := loadProject(opts, overrides)
			if err != nil {
				return err
			}

			files := make([]string, 0, len(args))
			for _, arg := range args {
				abs, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				files = append(files, abs)
			}
			if len(files) == 0 {
				jobs, err := p.configuredJobs(nil)
				if err != nil {
					return err
				}
				seen := map[string]bool{}
				for _, job := range jobs {
					if !seen[job.Rules] {
						seen[job.Rules] = true
						files = append(files, job.Rules)
					}
				}
			}

			result, err := commands.Inspect(commands.InspectOptions{
				Config:    p.config,
				RuleFiles: files,
				Observer:  traceObserver(),
			})
			if err != nil {
				return err
			}
			return render(cmd, opts, result)
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "", MsgFlagEncoding)
	return cmd
}

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(opts.root)
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}
			result, err := commands.Init(commands.InitOptions{Dir: p.WorkDir(), Force: force})
			if err != nil {
				return err
			}
			return render(cmd, opts, result)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
