package directive

import "fmt"

// Kind classifies a directive token.
type Kind int

const (
	// Operator is the leading "@"
	Operator Kind = iota
	// Name is a bare word such as mod, after, contains or last
	Name
	// String is a quoted literal; Token.Value holds the decoded text
	String
	// EndMarker closes every token sequence
	EndMarker
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case Operator:
		return "OPERATOR"
	case Name:
		return "NAME"
	case String:
		return "STRING"
	case EndMarker:
		return "END"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position is a 1-based line and column inside a rule file.
type Position struct {
	Line   int
	Column int
}

// String renders the position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexeme of a directive line.
type Token struct {
	Kind  Kind
	Text  string // raw lexeme as written
	Value string // decoded literal for String tokens, Text otherwise
	Start Position
	End   Position
}

// Is reports whether the token has the given kind and raw text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// String renders the token for diagnostics
func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Text, t.Start)
}
