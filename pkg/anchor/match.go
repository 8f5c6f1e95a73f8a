package anchor

import (
	"fmt"
	"regexp"
	"strings"
)

type matcher interface {
	match(line string) bool
}

type exactMatcher string

func (m exactMatcher) match(line string) bool { return line == string(m) }

type substringMatcher string

func (m substringMatcher) match(line string) bool { return strings.Contains(line, string(m)) }

type globMatcher struct {
	re *regexp.Regexp
}

func (m globMatcher) match(line string) bool { return m.re.MatchString(line) }

func compileMatcher(kind Match, term string) (matcher, error) {
	switch kind {
	case Exact:
		return exactMatcher(term), nil
	case Substring:
		return substringMatcher(term), nil
	case Glob:
		re, err := regexp.Compile(translateGlob(term))
		if err != nil {
			return nil, fmt.Errorf("cannot compile glob %q: %w", term, err)
		}
		return globMatcher{re: re}, nil
	default:
		panic(fmt.Sprintf("anchor: unknown match kind %d", int(kind)))
	}
}

// translateGlob turns a shell wildcard pattern into an anchored regular
// expression. "*" matches any run of characters including "/", "?" matches a
// single character, "[seq]" and "[!seq]" match character sets; an unclosed
// "[" is literal. There is no escape character.
func translateGlob(pattern string) string {
	var b strings.Builder
	b.WriteString(`(?s)\A`)

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(translateClass(runes[i+1 : end]))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`\z`)
	return b.String()
}

// classEnd returns the index of the "]" closing the set opened at start, or
// -1 when the set is never closed. A "]" right after "[" or "[!" is literal.
func classEnd(runes []rune, start int) int {
	j := start + 1
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	if j >= len(runes) {
		return -1
	}
	return j
}

func translateClass(body []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	if len(body) > 0 && body[0] == '!' {
		b.WriteByte('^')
		body = body[1:]
	}
	for _, c := range body {
		switch c {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte(']')
	return b.String()
}
