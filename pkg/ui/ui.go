// Package ui renders command results in terminal, text, JSON and YAML form.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/arthur-debert/modtext/pkg/ui/json"
	"github.com/arthur-debert/modtext/pkg/ui/terminal"
	"github.com/arthur-debert/modtext/pkg/ui/text"
	"github.com/arthur-debert/modtext/pkg/ui/yaml"
)

// Renderer writes command output in one format.
type Renderer interface {
	// RenderResult writes the jobs, rule sets, diffs and message of result
	RenderResult(result *types.CommandResult) error
	// RenderError writes err with its code and location when it has them
	RenderError(err error) error
	// RenderMessage writes msg, interpreting [tag] markup where styling applies
	RenderMessage(msg string) error
}

// NewRenderer creates the renderer for format writing to output. FormatAuto
// is resolved against output with DetectFormat.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
