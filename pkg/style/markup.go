package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"muted":   MutedStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"warning": WarningStyle,
			"path":    PathStyle,
			"code":    CodeStyle,
			"mod":     ModStyle,
			"line":    LineStyle,
			"added":   AddedStyle,
			"removed": RemovedStyle,
		},
	}
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for tag, style := range p.styles {
			pattern := tagPattern(tag)
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return style.Render(submatch[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// Strip removes the known tags and keeps their content
func (p *MarkupParser) Strip(text string) string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, regexp.QuoteMeta(tag))
	}
	sort.Strings(tags)
	pattern := regexp.MustCompile(`\[/?(?:` + strings.Join(tags, "|") + `)\]`)
	return pattern.ReplaceAllString(text, "")
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}

func tagPattern(tag string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(tag)
	return regexp.MustCompile(`(?s)\[` + quoted + `\](.*?)\[/` + quoted + `\]`)
}

// Global parser instance
var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
