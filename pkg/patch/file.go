package patch

import (
	"github.com/arthur-debert/modtext/pkg/document"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/ruleset"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
)

// FileOptions controls file-to-file patching.
type FileOptions struct {
	FS        afero.Fs
	Encoding  string
	Newline   document.Newline
	Annotator Annotator
	// Observer receives read, search, insert and write events
	Observer types.Observer
	// DryRun prepares the output without writing the target
	DryRun bool
}

// Result describes one patched file.
type Result struct {
	SourcePath  string
	TargetPath  string
	SourceLines []string
	Output      []string
	Plan        *InsertionPlan
	Written     bool
}

// Prepare loads sourcePath, resolves rs against it and merges the output
// without touching any target.
func Prepare(rs *ruleset.RuleSet, sourcePath string, opts FileOptions) (*Result, error) {
	logger := logging.GetLogger("patch")
	observer := types.ObserverOrNop(opts.Observer)

	doc, err := document.NewLoader(opts.FS, opts.Encoding).Load(sourcePath)
	if err != nil {
		return nil, err
	}
	observer.Observe(types.Event{Kind: types.EventSourceRead, Path: sourcePath, Count: doc.Len()})

	plan, err := PlanObserved(rs, doc.Lines, opts.Observer)
	if err != nil {
		return nil, err
	}
	output := Merge(plan, doc.Lines, Options{Annotator: opts.Annotator, Observer: observer})

	logger.Debug().
		Str("source", sourcePath).
		Int("mods", rs.Len()).
		Int("inserted", plan.InsertedLines()).
		Msg("patch prepared")

	return &Result{
		SourcePath:  sourcePath,
		SourceLines: doc.Lines,
		Output:      output,
		Plan:        plan,
	}, nil
}

// Write stores the prepared output at targetPath. The target is replaced
// atomically, so an existing file is either fully replaced or left alone.
func (r *Result) Write(targetPath string, opts FileOptions) error {
	writer := document.NewWriter(opts.FS, opts.Encoding, opts.Newline)
	if err := writer.WriteLines(targetPath, r.Output); err != nil {
		return err
	}
	r.TargetPath = targetPath
	r.Written = true
	types.ObserverOrNop(opts.Observer).Observe(types.Event{
		Kind:  types.EventTargetWritten,
		Path:  targetPath,
		Count: len(r.Output),
	})
	return nil
}

// ApplyFile patches sourcePath with rs and writes the result to targetPath.
// Nothing is written when any mod fails to resolve or two mods conflict.
func ApplyFile(rs *ruleset.RuleSet, sourcePath, targetPath string, opts FileOptions) (*Result, error) {
	result, err := Prepare(rs, sourcePath, opts)
	if err != nil {
		return nil, err
	}
	result.TargetPath = targetPath
	if opts.DryRun {
		return result, nil
	}
	if err := result.Write(targetPath, opts); err != nil {
		return nil, err
	}
	return result, nil
}
