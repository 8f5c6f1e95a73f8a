// pkg/mod/mod_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs for include files
// PURPOSE: Test mod descriptor construction, includes and anchor chain resolution

package mod_test

import (
	"testing"

	"github.com/arthur-debert/modtext/pkg/anchor"
	"github.com/arthur-debert/modtext/pkg/document"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/mod"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines numbers the given texts starting at first
func lines(first int, texts ...string) []mod.SourceLine {
	result := make([]mod.SourceLine, len(texts))
	for i, text := range texts {
		result[i] = mod.SourceLine{Number: first + i, Text: text}
	}
	return result
}

func memIncluder(t *testing.T, files map[string]string) mod.Includer {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return document.NewLoader(fs, "utf-8")
}

func TestNew(t *testing.T) {
	t.Run("description_anchors_and_text", func(t *testing.T) {
		d, err := mod.New(
			lines(3, `@mod "sanitize chat"`, `@after "function OnChat()"`, `@before "end" last`),
			lines(6, "  sanitize(args)", ""),
			mod.Options{},
		)
		require.NoError(t, err)

		assert.Equal(t, "sanitize chat", d.Description)
		assert.Equal(t, 3, d.Pos.Line)
		require.Len(t, d.Anchors, 2)
		assert.Equal(t, anchor.After, d.Anchors[0].Role)
		assert.Equal(t, anchor.Before, d.Anchors[1].Role)
		assert.Equal(t, anchor.Last, d.Anchors[1].Variant.Select)
		assert.Equal(t, []string{"  sanitize(args)", ""}, d.TextLines())
		assert.Equal(t, 6, d.Lines[0].Number)
		assert.Equal(t, "sanitize chat", d.String())
	})

	t.Run("include_appends_after_literal_text", func(t *testing.T) {
		includer := memIncluder(t, map[string]string{
			"/rules/chatmaid.lua": "local a = 1  \nlocal b = 2\n",
		})
		d, err := mod.New(
			lines(1, `@mod "include"`, `@include "chatmaid.lua"`),
			lines(3, "-- literal"),
			mod.Options{Includer: includer, BaseDir: "/rules"},
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"-- literal", "local a = 1", "local b = 2"}, d.TextLines())
		assert.Equal(t, "", d.Lines[0].Source)
		assert.Equal(t, "/rules/chatmaid.lua", d.Lines[1].Source)
		assert.Equal(t, 2, d.Lines[2].Number)
	})

	t.Run("absolute_include_ignores_base_dir", func(t *testing.T) {
		includer := memIncluder(t, map[string]string{"/abs/x.txt": "x\n"})
		d, err := mod.New(
			lines(1, `@mod "abs"`, `@include "/abs/x.txt"`),
			nil,
			mod.Options{Includer: includer, BaseDir: "/rules"},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, d.TextLines())
	})

	t.Run("include_only_is_valid", func(t *testing.T) {
		includer := memIncluder(t, map[string]string{"/r/a.txt": "a\n", "/r/b.txt": "b\n"})
		d, err := mod.New(
			lines(1, `@mod "two"`, `@include "a.txt"`, `@include "b.txt"`),
			nil,
			mod.Options{Includer: includer, BaseDir: "/r"},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, d.TextLines())
	})
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name       string
		directives []mod.SourceLine
		text       []mod.SourceLine
		wantCode   errors.ErrorCode
		wantLine   int
		wantColumn int
	}{
		{
			name:       "description_not_a_string",
			directives: lines(2, `@mod sanitize`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 6,
		},
		{
			name:       "missing_description",
			directives: lines(2, `@mod`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 5,
		},
		{
			name:       "text_after_description",
			directives: lines(2, `@mod "a" last`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 10,
		},
		{
			name:       "unknown_statement",
			directives: lines(1, `@mod "a"`, `@replace "x"`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 2,
		},
		{
			name:       "bare_operator",
			directives: lines(1, `@mod "a"`, `@`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 2,
		},
		{
			name:       "second_mod_in_directive_run",
			directives: lines(1, `@mod "a"`, `@mod "b"`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrStructural,
			wantLine:   2, wantColumn: 2,
		},
		{
			name:       "empty_mod",
			directives: lines(4, `@mod "empty"`, `@after "x"`),
			wantCode:   errors.ErrStructural,
			wantLine:   4, wantColumn: 0,
		},
		{
			name:       "anchor_error_is_propagated",
			directives: lines(1, `@mod "a"`, `@after "x" glob glob`),
			text:       lines(3, "x"),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 17,
		},
		{
			name:       "include_without_path",
			directives: lines(1, `@mod "a"`, `@include`),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 9,
		},
		{
			name:       "include_with_trailing_text",
			directives: lines(1, `@mod "a"`, `@include "x" "y"`),
			wantCode:   errors.ErrDirectiveSyntax,
			wantLine:   2, wantColumn: 14,
		},
		{
			name:       "include_unreadable",
			directives: lines(1, `@mod "a"`, `@include "missing.txt"`),
			wantCode:   errors.ErrIncludeRead,
			wantLine:   2, wantColumn: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mod.New(tt.directives, tt.text, mod.Options{Includer: memIncluder(t, nil), BaseDir: "/r"})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))

			var modErr *errors.ModtextError
			require.ErrorAs(t, err, &modErr)
			assert.Equal(t, tt.wantLine, modErr.Line)
			assert.Equal(t, tt.wantColumn, modErr.Column)
		})
	}

	t.Run("run_must_start_with_mod", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = mod.New(lines(1, `@after "x"`), lines(2, "x"), mod.Options{}) })
		assert.Panics(t, func() { _, _ = mod.New(nil, lines(2, "x"), mod.Options{}) })
	})
}

func TestIsDeclaration(t *testing.T) {
	assert.True(t, mod.IsDeclaration(`@mod "x"`))
	assert.True(t, mod.IsDeclaration(`@mod`))
	assert.True(t, mod.IsDeclaration(`@mod"x"`))
	assert.False(t, mod.IsDeclaration(`@modify "x"`))
	assert.False(t, mod.IsDeclaration(`@after "x"`))
	assert.False(t, mod.IsDeclaration(`mod "x"`))
}

func TestResolve(t *testing.T) {
	doc := []string{"function A()", "  body", "end", "function B()", "  body", "end", "tail"}

	tests := []struct {
		name       string
		directives []string
		want       int
	}{
		{"no_anchors_inserts_at_top", []string{`@mod "t"`}, 0},
		{"after_exact", []string{`@mod "t"`, `@after "tail"`}, 7},
		{"before_exact", []string{`@mod "t"`, `@before "function B()"`}, 3},
		{"chain_narrows_search", []string{`@mod "t"`, `@after "function B()"`, `@before "end"`}, 5},
		{"chain_without_narrowing_finds_first", []string{`@mod "t"`, `@before "end"`}, 2},
		{"last_in_chain", []string{`@mod "t"`, `@after "function A()"`, `@after "  body" last`}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := mod.New(lines(1, tt.directives...), lines(10, "inserted"), mod.Options{})
			require.NoError(t, err)

			index, err := d.Resolve(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, index)
		})
	}

	t.Run("chain_restarts_at_previous_result", func(t *testing.T) {
		d, err := mod.New(lines(1, `@mod "t"`, `@after "function B()"`, `@before "function A()"`), lines(4, "x"), mod.Options{})
		require.NoError(t, err)

		_, err = d.Resolve(doc)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAnchorNotFound))

		details := errors.GetErrorDetails(err)
		assert.Equal(t, 4, details[errors.DetailStartIndex])
		assert.Equal(t, "function A()", details[errors.DetailSearchTerm])
		assert.Equal(t, "t", details[errors.DetailMod])

		var modErr *errors.ModtextError
		require.ErrorAs(t, err, &modErr)
		assert.Equal(t, 3, modErr.Line)
	})
}

func TestEvents(t *testing.T) {
	var kinds []types.EventKind
	observer := types.ObserverFunc(func(e types.Event) { kinds = append(kinds, e.Kind) })

	includer := memIncluder(t, map[string]string{"/r/inc.txt": "a\nb\n"})
	d, err := mod.New(
		lines(1, `@mod "traced"`, `@include "inc.txt"`, `@after "x"`),
		nil,
		mod.Options{Includer: includer, BaseDir: "/r", Observer: observer},
	)
	require.NoError(t, err)
	_, err = d.Resolve([]string{"x"})
	require.NoError(t, err)

	assert.Equal(t, []types.EventKind{
		types.EventModDeclared,
		types.EventIncludeRead,
		types.EventSearchStarted,
		types.EventLineExamined,
		types.EventAnchorFound,
	}, kinds)
}
