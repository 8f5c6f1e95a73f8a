package anchor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/modtext/pkg/directive"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/types"
)

// Role decides where text goes relative to the matched line.
type Role int

const (
	// Before inserts in front of the matched line
	Before Role = iota
	// After inserts behind the matched line
	After
)

// Keyword returns the directive keyword for the role
func (r Role) Keyword() string {
	switch r {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		panic(fmt.Sprintf("anchor: unknown role %d", int(r)))
	}
}

// Modifier names accepted after the search term.
const (
	ModifierContains = "contains"
	ModifierGlob     = "glob"
	ModifierLast     = "last"
)

// Finder locates one anchor line in a document.
type Finder struct {
	Role    Role
	Term    string
	Variant Variant
	Pos     directive.Position

	matcher matcher
}

// New compiles the tokens of one @after or @before directive into a Finder.
//
// tokens[0] and tokens[1] must be "@" and the role keyword; the caller has
// already dispatched on them, so a mismatch panics.
func New(role Role, tokens []directive.Token) (*Finder, error) {
	if len(tokens) < 2 || !tokens[0].Is(directive.Operator, "@") || !tokens[1].Is(directive.Name, role.Keyword()) {
		panic(fmt.Sprintf("anchor: tokens must start with @%s: %v", role.Keyword(), tokens))
	}

	var (
		term     string
		haveTerm bool
		contains bool
		glob     bool
		last     bool
	)
	seen := func(flag *bool, tok directive.Token) error {
		if *flag {
			return syntaxError(tok.Start, fmt.Sprintf("duplicate %q must be removed", tok.Text))
		}
		*flag = true
		return nil
	}

	for _, tok := range tokens[2:] {
		switch tok.Kind {
		case directive.Name:
			var err error
			switch tok.Text {
			case ModifierContains:
				err = seen(&contains, tok)
			case ModifierGlob:
				err = seen(&glob, tok)
			case ModifierLast:
				err = seen(&last, tok)
			default:
				err = syntaxError(tok.Start, fmt.Sprintf("cannot process unknown keyword %q", tok.Text))
			}
			if err != nil {
				return nil, err
			}
		case directive.String:
			if haveTerm {
				return nil, syntaxError(tok.Start, "duplicate search term must be removed")
			}
			if strings.TrimRightFunc(tok.Value, unicode.IsSpace) != tok.Value {
				return nil, syntaxError(tok.Start,
					"trailing white space in search term must be removed because trailing white space in input is discarded and can never be found")
			}
			term = tok.Value
			haveTerm = true
		case directive.EndMarker:
		default:
			return nil, syntaxError(tok.Start, fmt.Sprintf("cannot process unknown keyword %q", tok.Text))
		}
	}
	if !haveTerm {
		return nil, syntaxError(tokens[0].Start, "search term must be specified")
	}

	variant := NewVariant(contains, glob, last)
	pattern := term
	if contains && glob {
		pattern = "*" + term + "*"
	}
	m, err := compileMatcher(variant.Match, pattern)
	if err != nil {
		return nil, syntaxError(tokens[0].Start, err.Error())
	}

	return &Finder{
		Role:    role,
		Term:    pattern,
		Variant: variant,
		Pos:     tokens[0].Start,
		matcher: m,
	}, nil
}

// Locate scans lines from start and returns the insertion index of the
// anchor: the matched index for Before, one past it for After.
func (f *Finder) Locate(lines []string, start int) (int, error) {
	return f.LocateObserved(lines, start, types.NopObserver)
}

// LocateObserved is Locate with a progress trace.
func (f *Finder) LocateObserved(lines []string, start int, observer types.Observer) (int, error) {
	if start < 0 {
		panic(fmt.Sprintf("anchor: negative start index %d", start))
	}
	observer.Observe(types.Event{Kind: types.EventSearchStarted, Term: f.Term, Line: start + 1})

	found := -1
	for index := start; index < len(lines); index++ {
		observer.Observe(types.Event{Kind: types.EventLineExamined, Line: index + 1, Text: lines[index]})
		if !f.matcher.match(lines[index]) {
			continue
		}
		found = index
		if f.Variant.Select == First {
			break
		}
	}
	if found < 0 {
		return 0, errors.Newf(errors.ErrAnchorNotFound, "cannot find search term %q starting at line %d", f.Term, start+1).
			At(f.Pos.Line, f.Pos.Column).
			WithDetail(errors.DetailStartIndex, start).
			WithDetail(errors.DetailSearchTerm, f.Term)
	}
	observer.Observe(types.Event{Kind: types.EventAnchorFound, Term: f.Term, Line: found + 1, Text: lines[found]})

	if f.Role == After {
		return found + 1, nil
	}
	return found, nil
}

// String renders the finder the way it would be written in a rule file
func (f *Finder) String() string {
	parts := []string{"@" + f.Role.Keyword(), strconv.Quote(f.Term)}
	parts = append(parts, f.Variant.Modifiers()...)
	return strings.Join(parts, " ")
}

func syntaxError(pos directive.Position, message string) *errors.ModtextError {
	return errors.New(errors.ErrDirectiveSyntax, message).At(pos.Line, pos.Column)
}
