package mod

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modtext/pkg/anchor"
	"github.com/arthur-debert/modtext/pkg/directive"
	"github.com/arthur-debert/modtext/pkg/document"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/types"
)

// New builds a descriptor from its directive run and text lines.
//
// directives[0] must be the @mod line; the rule-set parser guarantees this,
// so a violation panics. The literal text lines come first in Lines, included
// content is appended in directive order.
func New(directives, text []SourceLine, opts Options) (*Descriptor, error) {
	if len(directives) == 0 || !IsDeclaration(directives[0].Text) {
		panic(fmt.Sprintf("mod: directive run must start with @%s: %v", KeywordMod, directives))
	}
	observer := types.ObserverOrNop(opts.Observer)
	includer := opts.Includer
	if includer == nil {
		includer = document.NewLoader(nil, document.DefaultEncoding)
	}

	head := directives[0]
	tokens, err := directive.Tokenize(head.Number, head.Text)
	if err != nil {
		return nil, err
	}
	if !tokens[0].Is(directive.Operator, "@") || !tokens[1].Is(directive.Name, KeywordMod) {
		panic(fmt.Sprintf("mod: directive run must start with @%s: %v", KeywordMod, tokens))
	}
	if tokens[2].Kind != directive.String {
		return nil, errors.Newf(errors.ErrDirectiveSyntax,
			"after @mod a string to describe the mod must be specified (found: %q)", tokens[2].Text).
			At(tokens[2].Start.Line, tokens[2].Start.Column)
	}
	if tokens[3].Kind != directive.EndMarker {
		return nil, errors.New(errors.ErrDirectiveSyntax, `unexpected text after @mod "..." must be removed`).
			At(tokens[3].Start.Line, tokens[3].Start.Column)
	}

	d := &Descriptor{
		Description: tokens[2].Value,
		Pos:         tokens[0].Start,
		observer:    observer,
	}
	for _, line := range text {
		d.Lines = append(d.Lines, Line{Number: line.Number, Text: line.Text})
	}
	observer.Observe(types.Event{Kind: types.EventModDeclared, Mod: d.Description, Line: head.Number})

	for _, line := range directives[1:] {
		tokens, err := directive.Tokenize(line.Number, line.Text)
		if err != nil {
			return nil, err
		}
		keyword := tokens[1]
		if !tokens[0].Is(directive.Operator, "@") || keyword.Kind != directive.Name {
			return nil, unknownStatement(line, keyword.Start)
		}

		switch keyword.Text {
		case KeywordAfter:
			finder, err := anchor.New(anchor.After, tokens)
			if err != nil {
				return nil, err
			}
			d.Anchors = append(d.Anchors, finder)
		case KeywordBefore:
			finder, err := anchor.New(anchor.Before, tokens)
			if err != nil {
				return nil, err
			}
			d.Anchors = append(d.Anchors, finder)
		case KeywordInclude:
			if err := d.include(tokens, includer, opts.BaseDir); err != nil {
				return nil, err
			}
		case KeywordMod:
			return nil, errors.Newf(errors.ErrStructural,
				"@mod %q must be followed by text lines or @include before the next @mod", d.Description).
				At(keyword.Start.Line, keyword.Start.Column)
		default:
			return nil, unknownStatement(line, keyword.Start)
		}
	}

	if len(d.Lines) == 0 {
		return nil, errors.Newf(errors.ErrStructural,
			"@mod must be followed by text lines or @include: %s", d.Description).
			At(head.Number, 0)
	}
	return d, nil
}

func (d *Descriptor) include(tokens []directive.Token, includer Includer, baseDir string) error {
	pathToken := tokens[2]
	if pathToken.Kind != directive.String {
		return errors.Newf(errors.ErrDirectiveSyntax,
			"after @include a string containing the path to include must be specified (found: %q)", pathToken.Text).
			At(pathToken.Start.Line, pathToken.Start.Column)
	}
	if tokens[3].Kind != directive.EndMarker {
		return errors.New(errors.ErrDirectiveSyntax, `unexpected text after @include "..." must be removed`).
			At(tokens[3].Start.Line, tokens[3].Start.Column)
	}

	path := pathToken.Value
	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	lines, err := includer.ReadLines(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIncludeRead, "cannot read include %q", pathToken.Value).
			At(pathToken.Start.Line, pathToken.Start.Column).
			WithDetail(errors.DetailPath, path)
	}

	for i, text := range lines {
		d.Lines = append(d.Lines, Line{Number: i + 1, Text: document.Clean(text), Source: path})
	}
	d.observer.Observe(types.Event{
		Kind:  types.EventIncludeRead,
		Mod:   d.Description,
		Path:  path,
		Line:  pathToken.Start.Line,
		Count: len(lines),
	})
	return nil
}

// Resolve runs the anchor chain against lines and returns the insertion
// index. Each anchor starts scanning where the previous one resolved; a
// descriptor without anchors inserts at the top. Search events go to the
// observer the descriptor was built with.
func (d *Descriptor) Resolve(lines []string) (int, error) {
	return d.ResolveObserved(lines, d.observer)
}

// ResolveObserved is Resolve reporting search events to observer.
func (d *Descriptor) ResolveObserved(lines []string, observer types.Observer) (int, error) {
	observer = types.ObserverOrNop(observer)
	index := 0
	for _, finder := range d.Anchors {
		next, err := finder.LocateObserved(lines, index, observer)
		if err != nil {
			var modErr *errors.ModtextError
			if stderrors.As(err, &modErr) {
				modErr.WithDetail(errors.DetailMod, d.Description)
			}
			return 0, err
		}
		index = next
	}
	return index, nil
}

// TextLines returns the insertion text without line provenance.
func (d *Descriptor) TextLines() []string {
	result := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		result[i] = line.Text
	}
	return result
}

// String returns the description
func (d *Descriptor) String() string {
	return d.Description
}

// IsDeclaration reports whether text is a @mod line, as opposed to a line
// that merely starts with the same letters such as @modify.
func IsDeclaration(text string) bool {
	rest, ok := strings.CutPrefix(text, "@"+KeywordMod)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	c := rest[0]
	return !(c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9'))
}

func unknownStatement(line SourceLine, pos directive.Position) error {
	return errors.Newf(errors.ErrDirectiveSyntax, "unknown mod statement: %s", line.Text).
		At(pos.Line, pos.Column)
}
