package patch

import (
	"sort"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/mod"
	"github.com/arthur-debert/modtext/pkg/ruleset"
	"github.com/arthur-debert/modtext/pkg/types"
)

// Insertion is one mod resolved to the index it is inserted before.
type Insertion struct {
	Mod   *mod.Descriptor
	Index int
	Lines []string
}

// InsertionPlan maps insertion indexes to the mod claiming them.
type InsertionPlan struct {
	byIndex map[int]*Insertion
	// SourceLen is the number of lines the plan was resolved against
	SourceLen int
}

// Plan resolves every mod of rs against lines.
func Plan(rs *ruleset.RuleSet, lines []string) (*InsertionPlan, error) {
	return PlanObserved(rs, lines, nil)
}

// PlanObserved is Plan with search events sent to observer. A nil observer
// leaves each mod reporting to the observer it was parsed with.
func PlanObserved(rs *ruleset.RuleSet, lines []string, observer types.Observer) (*InsertionPlan, error) {
	plan := &InsertionPlan{byIndex: make(map[int]*Insertion), SourceLen: len(lines)}
	if rs == nil {
		return plan, nil
	}

	for _, d := range rs.Mods {
		var index int
		var err error
		if observer != nil {
			index, err = d.ResolveObserved(lines, observer)
		} else {
			index, err = d.Resolve(lines)
		}
		if err != nil {
			return nil, errors.WithPath(err, rs.Path)
		}
		if existing, ok := plan.byIndex[index]; ok {
			return nil, conflictError(existing.Mod, d, index, lines).InFile(rs.Path)
		}
		plan.byIndex[index] = &Insertion{Mod: d, Index: index, Lines: d.TextLines()}
	}
	return plan, nil
}

func conflictError(first, second *mod.Descriptor, index int, lines []string) *errors.ModtextError {
	target := "<end of document>"
	if index < len(lines) {
		target = lines[index]
	}
	return errors.Newf(errors.ErrConflict,
		"only one modification must match the line but currently %q and %q do: %q",
		first.Description, second.Description, target).
		At(second.Pos.Line, second.Pos.Column).
		WithDetail(errors.DetailIndex, index).
		WithDetail(errors.DetailFirst, first.Description).
		WithDetail(errors.DetailSecond, second.Description)
}

// At returns the insertion claiming index, if any.
func (p *InsertionPlan) At(index int) (*Insertion, bool) {
	ins, ok := p.byIndex[index]
	return ins, ok
}

// Len returns the number of insertions
func (p *InsertionPlan) Len() int {
	return len(p.byIndex)
}

// Insertions returns the insertions ordered by index.
func (p *InsertionPlan) Insertions() []*Insertion {
	result := make([]*Insertion, 0, len(p.byIndex))
	for _, ins := range p.byIndex {
		result = append(result, ins)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result
}

// InsertedLines returns the number of lines the plan adds, without
// annotations.
func (p *InsertionPlan) InsertedLines() int {
	total := 0
	for _, ins := range p.byIndex {
		total += len(ins.Lines)
	}
	return total
}
