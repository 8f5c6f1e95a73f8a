package anchor

import "strings"

// Match is how a single line is compared with the search term.
type Match int

const (
	// Exact requires the line to equal the term
	Exact Match = iota
	// Substring requires the term to occur anywhere in the line
	Substring
	// Glob matches the whole line against a shell wildcard pattern
	Glob
)

// String returns the string representation of Match
func (m Match) String() string {
	switch m {
	case Exact:
		return "exact"
	case Substring:
		return "contains"
	case Glob:
		return "glob"
	default:
		return "unknown"
	}
}

// Select picks which of several matching lines wins.
type Select int

const (
	// First stops at the first matching line
	First Select = iota
	// Last keeps scanning and takes the final matching line
	Last
)

// String returns the string representation of Select
func (s Select) String() string {
	if s == Last {
		return "last"
	}
	return "first"
}

// Variant is one of the six Match x Select combinations.
type Variant struct {
	Match  Match
	Select Select
}

// NewVariant maps the contains, glob and last modifiers onto a Variant.
// glob wins over contains; the caller wraps the term in "*" when both are set.
func NewVariant(contains, glob, last bool) Variant {
	v := Variant{Match: Exact, Select: First}
	switch {
	case glob:
		v.Match = Glob
	case contains:
		v.Match = Substring
	}
	if last {
		v.Select = Last
	}
	return v
}

// Modifiers returns the rule file modifiers that declare this variant.
func (v Variant) Modifiers() []string {
	var result []string
	switch v.Match {
	case Substring:
		result = append(result, ModifierContains)
	case Glob:
		result = append(result, ModifierGlob)
	}
	if v.Select == Last {
		result = append(result, ModifierLast)
	}
	return result
}

// String returns e.g. "exact/first" or "glob/last"
func (v Variant) String() string {
	return strings.Join([]string{v.Match.String(), v.Select.String()}, "/")
}
