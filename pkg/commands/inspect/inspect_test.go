// pkg/commands/inspect/inspect_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: in-memory filesystem
// PURPOSE: Test rule file descriptions

package inspect_test

import (
	"testing"

	"github.com/arthur-debert/modtext/pkg/commands/inspect"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	p := testutil.NewProject(t)
	rules := p.AddLines(t, "mods/chat.mod",
		"# header",
		`@mod "sanitize"`,
		`@after "function OnChat(args)"`,
		`@before "end" contains`,
		`@include "body.lua"`,
		`local clean = true`,
		`@mod "footer"`,
		`@after "return M" last`,
		"-- footer",
	)
	p.AddLines(t, "mods/body.lua", "args = sanitize(args)")

	result, err := inspect.Inspect(inspect.InspectOptions{RuleFiles: []string{rules}, FS: p.FS})
	require.NoError(t, err)

	require.Len(t, result.RuleSets, 1)
	rs := result.RuleSets[0]
	assert.Equal(t, rules, rs.Path)
	require.Len(t, rs.Mods, 2)

	first := rs.Mods[0]
	assert.Equal(t, "sanitize", first.Description)
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, []string{`@after "function OnChat(args)"`, `@before "end" contains`}, first.Anchors)
	assert.Equal(t, []string{p.Path("mods/body.lua")}, first.Includes)
	assert.Equal(t, []string{"local clean = true", "args = sanitize(args)"}, first.Text)

	second := rs.Mods[1]
	assert.Equal(t, []string{`@after "return M" last`}, second.Anchors)
	assert.Empty(t, second.Includes)
	assert.Equal(t, []string{"-- footer"}, second.Text)
}

func TestInspectErrors(t *testing.T) {
	t.Run("no_files", func(t *testing.T) {
		_, err := inspect.Inspect(inspect.InspectOptions{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("syntax_error_is_located", func(t *testing.T) {
		p := testutil.NewProject(t)
		rules := p.AddLines(t, "bad.mod", `@mod "x"`, `@after "a" sideways`, "text")

		_, err := inspect.Inspect(inspect.InspectOptions{RuleFiles: []string{rules}, FS: p.FS})
		require.Error(t, err)

		var modErr *errors.ModtextError
		require.ErrorAs(t, err, &modErr)
		assert.Equal(t, errors.ErrDirectiveSyntax, modErr.Code)
		assert.Equal(t, rules, modErr.Path)
		assert.Equal(t, 2, modErr.Line)
		assert.Equal(t, 12, modErr.Column)
	})
}
