package directive

import (
	stderrors "errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/arthur-debert/modtext/pkg/errors"
)

// directiveLexer covers the whole directive grammar: @name "string" name*
var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
	{Name: "Name", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Operator", Pattern: `@`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var (
	symbols      = directiveLexer.Symbols()
	stringType   = symbols["String"]
	nameType     = symbols["Name"]
	operatorType = symbols["Operator"]
	spaceType    = symbols["Whitespace"]
)

// Tokenize splits one directive line into tokens. lineNumber is the 1-based
// line of the directive in its rule file and is baked into every position.
// The result always ends with an EndMarker token.
func Tokenize(lineNumber int, line string) ([]Token, error) {
	lex, err := directiveLexer.LexString("", line)
	if err != nil {
		return nil, syntaxError(lineNumber, 1, "cannot read directive", err)
	}

	var result []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			column := 1
			var positioned interface{ Position() lexer.Position }
			if stderrors.As(err, &positioned) {
				column = positioned.Position().Column
			}
			return nil, syntaxError(lineNumber, column, malformedMessage(line, column), nil)
		}
		if tok.EOF() {
			end := Position{Line: lineNumber, Column: utf8.RuneCountInString(line) + 1}
			result = append(result, Token{Kind: EndMarker, Start: end, End: end})
			return result, nil
		}
		if tok.Type == spaceType {
			continue
		}

		start := Position{Line: lineNumber, Column: tok.Pos.Column}
		token := Token{
			Text:  tok.Value,
			Value: tok.Value,
			Start: start,
			End:   Position{Line: lineNumber, Column: start.Column + utf8.RuneCountInString(tok.Value)},
		}
		switch tok.Type {
		case stringType:
			value, err := Unquote(tok.Value)
			if err != nil {
				return nil, syntaxError(lineNumber, start.Column, "malformed string literal "+tok.Value, err)
			}
			token.Kind = String
			token.Value = value
		case nameType:
			token.Kind = Name
		case operatorType:
			token.Kind = Operator
		default:
			return nil, syntaxError(lineNumber, start.Column, "unexpected text "+strconv.Quote(tok.Value), nil)
		}
		result = append(result, token)
	}
}

// Unquote decodes a single or double quoted literal the way a string
// literal is evaluated: \\, \', \", \a \b \f \n \r \t \v, octal \o to
// \ooo, and \xhh, \uhhhh, \Uhhhhhhhh naming code points. Any other escape
// is an error. It never evaluates anything beyond the literal itself.
func Unquote(literal string) (string, error) {
	if len(literal) < 2 {
		return "", strconv.ErrSyntax
	}
	quote := literal[0]
	if (quote != '"' && quote != '\'') || literal[len(literal)-1] != quote {
		return "", strconv.ErrSyntax
	}
	body := literal[1 : len(literal)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c == quote {
			return "", strconv.ErrSyntax
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", strconv.ErrSyntax
		}
		e := body[i+1]
		i += 2
		switch e {
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			value := rune(e - '0')
			for n := 1; n < 3 && i < len(body) && '0' <= body[i] && body[i] <= '7'; n++ {
				value = value*8 + rune(body[i]-'0')
				i++
			}
			b.WriteRune(value)
		case 'x', 'u', 'U':
			digits := 2
			switch e {
			case 'u':
				digits = 4
			case 'U':
				digits = 8
			}
			if i+digits > len(body) {
				return "", strconv.ErrSyntax
			}
			value, err := strconv.ParseUint(body[i:i+digits], 16, 32)
			if err != nil || !utf8.ValidRune(rune(value)) {
				return "", strconv.ErrSyntax
			}
			b.WriteRune(rune(value))
			i += digits
		default:
			return "", strconv.ErrSyntax
		}
	}
	return b.String(), nil
}

func malformedMessage(line string, column int) string {
	rest := line
	if column > 1 {
		runes := []rune(line)
		if column-1 <= len(runes) {
			rest = string(runes[column-1:])
		}
	}
	if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, "'") {
		return "unterminated string literal"
	}
	if r, _ := utf8.DecodeRuneInString(rest); r != utf8.RuneError {
		return "unexpected character " + strconv.QuoteRune(r)
	}
	return "malformed directive"
}

func syntaxError(line, column int, message string, cause error) *errors.ModtextError {
	var err *errors.ModtextError
	if cause != nil {
		err = errors.Wrap(cause, errors.ErrDirectiveSyntax, message)
	} else {
		err = errors.New(errors.ErrDirectiveSyntax, message)
	}
	return err.At(line, column)
}
