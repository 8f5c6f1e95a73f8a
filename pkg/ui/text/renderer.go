// Package text renders command results as human-readable text, optionally
// styled with lipgloss.
package text

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/style"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Renderer writes results as text
type Renderer struct {
	output io.Writer
	styled bool
}

// New creates a plain text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// NewStyled creates a renderer that colors its output
func NewStyled(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output, styled: true}, nil
}

func (r *Renderer) paint(st lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return st.Render(s)
}

func (r *Renderer) markup(s string) string {
	if !r.styled {
		return style.Strip(s)
	}
	return style.Render(s)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

// RenderResult writes rule sets, then jobs, then diffs, then the message
func (r *Renderer) RenderResult(res *types.CommandResult) error {
	var lines []string
	for _, rs := range res.RuleSets {
		lines = append(lines, r.ruleSetLines(rs)...)
	}
	for _, job := range res.Jobs {
		lines = append(lines, r.jobLines(job, res.DryRun)...)
	}
	for _, d := range res.Diffs {
		lines = append(lines, r.diffLines(d)...)
	}
	if res.Message != "" {
		lines = append(lines, r.markup(res.Message))
	}
	if len(lines) == 0 {
		return nil
	}
	return r.println(strings.Join(lines, "\n"))
}

func (r *Renderer) ruleSetLines(rs types.RuleSetReport) []string {
	lines := []string{fmt.Sprintf("%s: %s", r.paint(style.TitleStyle, rs.Path), plural(len(rs.Mods), "mod"))}
	for _, m := range rs.Mods {
		lines = append(lines, fmt.Sprintf("  %s %s",
			r.paint(style.ModStyle, m.Description),
			r.paint(style.MutedStyle, "(line "+strconv.Itoa(m.Line)+")")))
		for _, a := range m.Anchors {
			lines = append(lines, "    "+r.paint(style.CodeStyle, a))
		}
		for _, inc := range m.Includes {
			lines = append(lines, "    "+r.paint(style.CodeStyle, "@include ")+r.paint(style.PathStyle, inc))
		}
		lines = append(lines, "    "+r.paint(style.MutedStyle, plural(len(m.Text), "line")+" of text"))
	}
	return lines
}

func (r *Renderer) jobLines(job types.JobReport, dryRun bool) []string {
	header := fmt.Sprintf("%s %s", r.paint(style.TitleStyle, job.Name), r.paint(style.PathStyle, job.Source))
	if job.Target != "" {
		header += " -> " + r.paint(style.PathStyle, job.Target)
	}
	lines := []string{header}

	for _, ins := range job.Insertions {
		where := "before line " + r.paint(style.LineStyle, strconv.Itoa(ins.Line))
		if ins.AtEnd {
			where = "at end"
		}
		line := fmt.Sprintf("  %s: %s %s", r.paint(style.ModStyle, ins.Mod), plural(ins.Lines, "line"), where)
		if ins.Before != "" {
			line += ": " + r.paint(style.MutedStyle, strings.TrimSpace(ins.Before))
		}
		lines = append(lines, line)
	}

	var status string
	switch {
	case job.Written:
		status = r.paint(style.SuccessStyle, "wrote "+plural(job.OutputLines, "line"))
	case dryRun && job.Target != "":
		status = r.paint(style.WarningStyle, "would write "+plural(job.OutputLines, "line"))
	default:
		status = r.paint(style.SuccessStyle, "ok") + fmt.Sprintf(", %s resolved into %s",
			plural(job.SourceLines, "line"), plural(job.OutputLines, "line"))
	}
	return append(lines, "  "+status)
}

func (r *Renderer) diffLines(d types.DiffReport) []string {
	if d.Unified == "" {
		return []string{r.paint(style.MutedStyle, d.Source+": no changes")}
	}
	var lines []string
	inHunk := false
	for _, line := range strings.Split(strings.TrimRight(d.Unified, "\n"), "\n") {
		switch {
		case !inHunk && (strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---")):
			line = r.paint(style.TitleStyle, line)
		case strings.HasPrefix(line, "@@"):
			inHunk = true
			line = r.paint(style.LineStyle, line)
		case strings.HasPrefix(line, "+"):
			line = r.paint(style.AddedStyle, line)
		case strings.HasPrefix(line, "-"):
			line = r.paint(style.RemovedStyle, line)
		}
		lines = append(lines, line)
	}
	return lines
}

// RenderError renders an error as text
func (r *Renderer) RenderError(err error) error {
	return r.println(r.paint(style.ErrorStyle, "Error:") + " " + errorText(err))
}

// RenderMessage renders a simple message, interpreting style markup
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(r.markup(msg))
}

// errorText drops the code prefix from modtext errors
func errorText(err error) string {
	desc := errors.Describe(err)
	var modErr *errors.ModtextError
	if !stderrors.As(err, &modErr) {
		return desc.Error
	}
	if loc := modErr.Location(); loc != "" {
		return loc + ": " + desc.Error
	}
	return desc.Error
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
