// pkg/ui/format_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test format parsing and renderer selection

package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/arthur-debert/modtext/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{input: "", expected: ui.FormatAuto},
		{input: "auto", expected: ui.FormatAuto},
		{input: "terminal", expected: ui.FormatTerminal},
		{input: "plain", expected: ui.FormatText},
		{input: "JSON", expected: ui.FormatJSON},
		{input: "yml", expected: ui.FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			if tt.expected != ui.FormatAuto {
				assert.Equal(t, got, mustParse(t, got.String()))
			}
		})
	}
}

func mustParse(t *testing.T, s string) ui.Format {
	t.Helper()
	f, err := ui.ParseFormat(s)
	require.NoError(t, err)
	return f
}

func TestNewRenderer(t *testing.T) {
	result := &types.CommandResult{
		Command: "check",
		Jobs:    []types.JobReport{{Name: "chat", Source: "a.lua", SourceLines: 3, OutputLines: 4}},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatJSON, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderResult(result))
		assert.Contains(t, buf.String(), `"command": "check"`)
		assert.Contains(t, buf.String(), `"sourceLines": 3`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatYAML, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderResult(result))
		assert.Contains(t, buf.String(), "command: check")
		assert.Contains(t, buf.String(), "sourceLines: 3")
	})

	t.Run("json_error_keeps_location", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatJSON, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderError(errors.New(errors.ErrAnchorNotFound, "missing").At(3, 1).
			WithDetail(errors.DetailSearchTerm, "end")))
		assert.Contains(t, buf.String(), `"code": "ANCHOR_NOT_FOUND"`)
		assert.Contains(t, buf.String(), `"line": 3`)
		assert.Contains(t, buf.String(), `"search_term": "end"`)
	})

	t.Run("auto_on_buffer_is_text", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatAuto, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderMessage("[mod]x[/mod]"))
		assert.Equal(t, "x\n", buf.String())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestDetectFormat(t *testing.T) {
	t.Run("buffer_is_text", func(t *testing.T) {
		t.Setenv(ui.EnvFormat, "")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
	})

	t.Run("regular_file_is_text", func(t *testing.T) {
		t.Setenv(ui.EnvFormat, "")
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})

	t.Run("env_selects_format", func(t *testing.T) {
		t.Setenv(ui.EnvFormat, " JSON ")
		assert.Equal(t, ui.FormatJSON, ui.DetectFormat(&bytes.Buffer{}))

		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatAuto, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderResult(&types.CommandResult{Command: "list"}))
		assert.Contains(t, buf.String(), `"command": "list"`)
	})

	t.Run("env_auto_or_invalid_is_ignored", func(t *testing.T) {
		for _, v := range []string{"auto", "xml"} {
			t.Setenv(ui.EnvFormat, v)
			assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}), v)
		}
	})
}
