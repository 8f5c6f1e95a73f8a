// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/modtext/pkg/ui/text"
)

// New creates a renderer for color terminals
func New(output io.Writer) (*text.Renderer, error) {
	return text.NewStyled(output)
}
