// pkg/patch/file_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: afero MemMapFs, document I/O
// PURPOSE: Test file-to-file patching, atomic target replacement and round trips

package patch_test

import (
	"testing"

	"github.com/arthur-debert/modtext/pkg/document"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/patch"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/chat.lua", []byte("a\nb  \r\nc\n"), 0644))

	t.Run("writes_patched_target", func(t *testing.T) {
		var written []types.Event
		observer := types.ObserverFunc(func(e types.Event) {
			if e.Kind == types.EventTargetWritten || e.Kind == types.EventSourceRead {
				written = append(written, e)
			}
		})

		result, err := patch.ApplyFile(rules(t, `@mod "t"`, `@after "a"`, "X"), "/src/chat.lua", "/out/chat.lua",
			patch.FileOptions{FS: fs, Newline: document.LF, Observer: observer})
		require.NoError(t, err)
		assert.True(t, result.Written)
		assert.Equal(t, "/out/chat.lua", result.TargetPath)
		assert.Equal(t, []string{"a", "X", "b", "c"}, result.Output)

		data, err := afero.ReadFile(fs, "/out/chat.lua")
		require.NoError(t, err)
		assert.Equal(t, "a\nX\nb\nc\n", string(data))

		require.Len(t, written, 2)
		assert.Equal(t, 3, written[0].Count)
		assert.Equal(t, 4, written[1].Count)
	})

	t.Run("dry_run_writes_nothing", func(t *testing.T) {
		result, err := patch.ApplyFile(rules(t, `@mod "t"`, "X"), "/src/chat.lua", "/out/dry.lua",
			patch.FileOptions{FS: fs, DryRun: true})
		require.NoError(t, err)
		assert.False(t, result.Written)
		assert.Equal(t, []string{"X", "a", "b", "c"}, result.Output)

		exists, err := afero.Exists(fs, "/out/dry.lua")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("conflict_leaves_existing_target_untouched", func(t *testing.T) {
		previous := []byte("from a previous run\n")
		require.NoError(t, afero.WriteFile(fs, "/out/keep.lua", previous, 0644))

		rs := rules(t,
			`@mod "one"`, `@after "a"`, "X", "",
			`@mod "two"`, `@before "b"`, "Y",
		)
		_, err := patch.ApplyFile(rs, "/src/chat.lua", "/out/keep.lua", patch.FileOptions{FS: fs})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConflict))

		data, err := afero.ReadFile(fs, "/out/keep.lua")
		require.NoError(t, err)
		assert.Equal(t, previous, data)
	})

	t.Run("missing_source", func(t *testing.T) {
		_, err := patch.ApplyFile(rules(t, `@mod "t"`, "X"), "/src/none.lua", "/out/none.lua", patch.FileOptions{FS: fs})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
	})

	t.Run("invalid_utf8_source_fails_without_writing", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/src/latin.txt", []byte{'a', 0xff, 'b', '\n', 'c', '\n'}, 0644))

		_, err := patch.ApplyFile(nil, "/src/latin.txt", "/out/latin.txt", patch.FileOptions{FS: fs})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEncoding))

		var modErr *errors.ModtextError
		require.ErrorAs(t, err, &modErr)
		assert.Equal(t, "/src/latin.txt", modErr.Path)
		assert.Equal(t, 1, modErr.Line)

		exists, err := afero.Exists(fs, "/out/latin.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("round_trip_with_empty_rule_set", func(t *testing.T) {
		original := []string{"first", "\tsecond", "", "fourth"}
		require.NoError(t, document.NewWriter(fs, "", document.CRLF).WriteLines("/src/rt.txt", original))

		_, err := patch.ApplyFile(nil, "/src/rt.txt", "/out/rt.txt",
			patch.FileOptions{FS: fs, Newline: document.CRLF})
		require.NoError(t, err)

		before, err := afero.ReadFile(fs, "/src/rt.txt")
		require.NoError(t, err)
		after, err := afero.ReadFile(fs, "/out/rt.txt")
		require.NoError(t, err)
		assert.Equal(t, before, after)

		lines, err := document.NewLoader(fs, "").ReadLines("/out/rt.txt")
		require.NoError(t, err)
		assert.Equal(t, original, lines)
	})
}
