// pkg/patch/patch_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: ruleset parser
// PURPOSE: Test plan resolution, conflict detection and merge laws

package patch_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/patch"
	"github.com/arthur-debert/modtext/pkg/ruleset"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rules(t *testing.T, lines ...string) *ruleset.RuleSet {
	t.Helper()
	rs, err := ruleset.Parse(strings.NewReader(strings.Join(lines, "\n")), ruleset.Options{})
	require.NoError(t, err)
	return rs
}

func TestApplyExamples(t *testing.T) {
	doc := []string{"a", "b", "c"}

	tests := []struct {
		name  string
		rules []string
		want  []string
	}{
		{
			name:  "after_first_line",
			rules: []string{`@mod "t"`, `@after "a"`, "X"},
			want:  []string{"a", "X", "b", "c"},
		},
		{
			name:  "before_last_line",
			rules: []string{`@mod "t"`, `@before "c"`, "Y"},
			want:  []string{"a", "b", "Y", "c"},
		},
		{
			name:  "no_anchor_prepends",
			rules: []string{`@mod "t"`, "top"},
			want:  []string{"top", "a", "b", "c"},
		},
		{
			name:  "after_last_line_appends",
			rules: []string{`@mod "t"`, `@after "c"`, "tail1", "tail2"},
			want:  []string{"a", "b", "c", "tail1", "tail2"},
		},
		{
			name:  "multi_line_insertion_keeps_order",
			rules: []string{`@mod "t"`, `@before "b"`, "1", "2", "3"},
			want:  []string{"a", "1", "2", "3", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := patch.Apply(rules(t, tt.rules...), doc, patch.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, doc, "source must not be modified")
}

func TestApplyIdentity(t *testing.T) {
	doc := []string{"  indented", "", "last"}

	out, err := patch.Apply(&ruleset.RuleSet{}, doc, patch.Options{})
	require.NoError(t, err)
	assert.Equal(t, doc, out)

	out, err = patch.Apply(nil, doc, patch.Options{Annotator: patch.CommentAnnotator{Prefix: "--"}})
	require.NoError(t, err)
	assert.Equal(t, doc, out)

	out[0] = "changed"
	assert.Equal(t, "  indented", doc[0], "output must be a copy")
}

func TestApplyLengthLaw(t *testing.T) {
	doc := []string{"l0", "l1", "l2", "l3", "l4"}
	rs := rules(t,
		`@mod "second"`, `@before "l3"`, "B1", "B2", "B3", "",
		`@mod "first"`, `@before "l1"`, "A1", "A2",
	)

	out, err := patch.Apply(rs, doc, patch.Options{})
	require.NoError(t, err)

	require.Len(t, out, len(doc)+2+3)
	assert.Equal(t, []string{"l0", "A1", "A2", "l1", "l2", "B1", "B2", "B3", "l3", "l4"}, out)

	// insertA sits right before original line i, insertB right before line j
	// shifted by len(insertA).
	i, j := 1, 3
	assert.Equal(t, "l1", out[i+2])
	assert.Equal(t, "l3", out[j+2+3])
}

func TestApplyLast(t *testing.T) {
	doc := []string{"", "", "x", "", "", "x", "", "", "", "x", ""}

	out, err := patch.Apply(rules(t, `@mod "first"`, `@before "x"`, "F"), doc, patch.Options{})
	require.NoError(t, err)
	assert.Equal(t, "F", out[2])

	out, err = patch.Apply(rules(t, `@mod "last"`, `@before "x" last`, "L"), doc, patch.Options{})
	require.NoError(t, err)
	assert.Equal(t, "L", out[9])
}

func TestApplyContainsGlob(t *testing.T) {
	doc := []string{"local x = 1", "local food = nil", "return x"}

	out, err := patch.Apply(rules(t, `@mod "t"`, `@after "foo" contains glob`, "-- fed"), doc, patch.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"local x = 1", "local food = nil", "-- fed", "return x"}, out)
}

func TestApplyConflict(t *testing.T) {
	doc := []string{"a", "b", "c"}
	rs := rules(t,
		`@mod "one"`, `@after "a"`, "X", "",
		`@mod "two"`, `@before "b"`, "Y",
	)

	out, err := patch.Apply(rs, doc, patch.Options{})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflict))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, 1, details[errors.DetailIndex])
	assert.Equal(t, "one", details[errors.DetailFirst])
	assert.Equal(t, "two", details[errors.DetailSecond])
	assert.Contains(t, err.Error(), `"one" and "two"`)

	var modErr *errors.ModtextError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, 5, modErr.Line)
}

func TestApplyConflictAtEnd(t *testing.T) {
	rs := rules(t,
		`@mod "one"`, `@after "c"`, "X", "",
		`@mod "two"`, `@after "c" last`, "Y",
	)
	_, err := patch.Apply(rs, []string{"a", "b", "c"}, patch.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<end of document>")
}

func TestApplyAnchorNotFound(t *testing.T) {
	rs := rules(t, `@mod "one"`, `@after "a"`, "X", "", `@mod "two"`, `@after "zzz"`, "Y")
	rs.Path = "rules.mod"

	_, err := patch.Apply(rs, []string{"a", "b"}, patch.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAnchorNotFound))
	assert.Equal(t, "two", errors.GetErrorDetails(err)[errors.DetailMod])
	assert.Contains(t, err.Error(), "rules.mod:6")
}

func TestAnnotation(t *testing.T) {
	doc := []string{"a", "b"}
	rs := rules(t, `@mod "greeting"`, `@after "a"`, `print("hi")`)

	out, err := patch.Apply(rs, doc, patch.Options{Annotator: patch.CommentAnnotator{Prefix: "--"}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a",
		"-- mod begin: greeting",
		`print("hi")`,
		"-- mod end: greeting",
		"b",
	}, out)
}

func TestPlan(t *testing.T) {
	doc := []string{"a", "b", "c"}
	rs := rules(t,
		`@mod "late"`, `@after "c"`, "Z", "",
		`@mod "early"`, "A",
	)

	plan, err := patch.Plan(rs, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, 2, plan.InsertedLines())
	assert.Equal(t, 3, plan.SourceLen)

	insertions := plan.Insertions()
	require.Len(t, insertions, 2)
	assert.Equal(t, 0, insertions[0].Index)
	assert.Equal(t, "early", insertions[0].Mod.Description)
	assert.Equal(t, 3, insertions[1].Index)

	ins, ok := plan.At(3)
	require.True(t, ok)
	assert.Equal(t, []string{"Z"}, ins.Lines)
	_, ok = plan.At(1)
	assert.False(t, ok)
}

func TestMergeEvents(t *testing.T) {
	var events []types.Event
	observer := types.ObserverFunc(func(e types.Event) {
		if e.Kind == types.EventInserted {
			events = append(events, e)
		}
	})

	_, err := patch.Apply(rules(t, `@mod "t"`, `@before "b"`, "1", "2"), []string{"a", "b"}, patch.Options{Observer: observer})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "t", events[0].Mod)
	assert.Equal(t, 2, events[0].Line)
	assert.Equal(t, 2, events[0].Count)
}

func TestApplyReportsSearchEvents(t *testing.T) {
	var kinds []types.EventKind
	observer := types.ObserverFunc(func(e types.Event) {
		if e.Kind != types.EventLineExamined {
			kinds = append(kinds, e.Kind)
		}
	})

	_, err := patch.Apply(rules(t, `@mod "t"`, `@after "a"`, "X"), []string{"a", "b"}, patch.Options{Observer: observer})
	require.NoError(t, err)
	assert.Equal(t, []types.EventKind{
		types.EventSearchStarted, types.EventAnchorFound, types.EventInserted,
	}, kinds)
}
