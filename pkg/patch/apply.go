package patch

import (
	"fmt"

	"github.com/arthur-debert/modtext/pkg/ruleset"
	"github.com/arthur-debert/modtext/pkg/types"
)

// Annotator wraps the lines inserted for a mod.
type Annotator interface {
	Begin(description string) string
	End(description string) string
}

// CommentAnnotator surrounds insertions with line comments naming the mod.
type CommentAnnotator struct {
	Prefix string
}

// Begin returns the opening comment
func (a CommentAnnotator) Begin(description string) string {
	return fmt.Sprintf("%s mod begin: %s", a.Prefix, description)
}

// End returns the closing comment
func (a CommentAnnotator) End(description string) string {
	return fmt.Sprintf("%s mod end: %s", a.Prefix, description)
}

// Options controls how a plan is merged into output lines.
type Options struct {
	// Annotator, when set, wraps every insertion
	Annotator Annotator
	// Observer receives search and insert events. When nil, search events
	// go to the observer each mod was parsed with.
	Observer types.Observer
}

// Apply resolves rs against lines and returns the merged output. lines is
// never modified.
func Apply(rs *ruleset.RuleSet, lines []string, opts Options) ([]string, error) {
	plan, err := PlanObserved(rs, lines, opts.Observer)
	if err != nil {
		return nil, err
	}
	return Merge(plan, lines, opts), nil
}

// Merge writes lines with the plan's insertions placed before the lines at
// their indexes. An insertion at len(lines) is appended.
func Merge(plan *InsertionPlan, lines []string, opts Options) []string {
	observer := types.ObserverOrNop(opts.Observer)
	out := make([]string, 0, len(lines)+plan.InsertedLines()+2*plan.Len())

	insert := func(index int) {
		ins, ok := plan.At(index)
		if !ok {
			return
		}
		observer.Observe(types.Event{
			Kind:  types.EventInserted,
			Mod:   ins.Mod.Description,
			Line:  index + 1,
			Count: len(ins.Lines),
		})
		if opts.Annotator != nil {
			out = append(out, opts.Annotator.Begin(ins.Mod.Description))
		}
		out = append(out, ins.Lines...)
		if opts.Annotator != nil {
			out = append(out, opts.Annotator.End(ins.Mod.Description))
		}
	}

	for index, line := range lines {
		insert(index)
		out = append(out, line)
	}
	insert(len(lines))
	return out
}
