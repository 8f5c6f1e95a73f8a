package mod

import (
	"github.com/arthur-debert/modtext/pkg/anchor"
	"github.com/arthur-debert/modtext/pkg/directive"
	"github.com/arthur-debert/modtext/pkg/types"
)

// Directive keywords understood inside a mod block.
const (
	KeywordMod     = "mod"
	KeywordAfter   = "after"
	KeywordBefore  = "before"
	KeywordInclude = "include"
)

// SourceLine is a cleaned line of a rule file and its 1-based line number.
type SourceLine struct {
	Number int
	Text   string
}

// Line is one line of insertion text.
type Line struct {
	Number int    // 1-based line in Source, or in the rule file when Source is empty
	Text   string // right-trimmed text
	Source string // include path the line was read from
}

// Includer reads the lines of an included file.
type Includer interface {
	ReadLines(path string) ([]string, error)
}

// Options controls how a descriptor is built.
type Options struct {
	// Includer reads @include files; nil reads from the OS filesystem as UTF-8
	Includer Includer
	// BaseDir is prepended to relative @include paths
	BaseDir string
	// Observer receives declaration, include and search events
	Observer types.Observer
}

// Descriptor is one complete mod rule.
type Descriptor struct {
	Description string
	Anchors     []*anchor.Finder
	Lines       []Line
	Pos         directive.Position

	observer types.Observer
}
