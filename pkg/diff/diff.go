// Package diff renders unified diffs between a source document and its
// patched output.
package diff

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Result is a rendered unified diff with its line counts.
type Result struct {
	Unified string
	Added   int
	Removed int
}

// Compare diffs from against to, labelling the sides with the two names.
// Equal inputs produce an empty Result.
func Compare(fromName, toName string, from, to []string) Result {
	a := join(from)
	b := join(to)
	if a == b {
		return Result{}
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), a, b)
	unified := gotextdiff.ToUnified(fromName, toName, a, edits)

	result := Result{Unified: fmt.Sprint(unified)}
	for _, hunk := range unified.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case gotextdiff.Insert:
				result.Added++
			case gotextdiff.Delete:
				result.Removed++
			}
		}
	}
	return result
}

// Unified returns the unified diff turning from into to.
func Unified(fromName, toName string, from, to []string) string {
	return Compare(fromName, toName, from, to).Unified
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
