package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are rendered.
type Format int

const (
	// FormatAuto resolves to another format with DetectFormat
	FormatAuto Format = iota
	// FormatTerminal is styled text for color terminals
	FormatTerminal
	// FormatText is plain text, safe for pipes and logs
	FormatText
	// FormatJSON is indented JSON for scripts
	FormatJSON
	// FormatYAML is YAML for scripts and humans alike
	FormatYAML
)

// EnvFormat names the variable that replaces auto detection, so scripts can
// ask for json or yaml without passing --format to every call.
const EnvFormat = "MODTEXT_FORMAT"

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
	FormatYAML:     "yaml",
}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
	"yml":      FormatYAML,
}

// String returns the canonical flag value of the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat accepts the canonical names and their aliases, ignoring case.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatAuto, fmt.Errorf("unknown format %q (want auto, term, text, json or yaml)", s)
}

// DetectFormat resolves FormatAuto for w. MODTEXT_FORMAT wins when set to a
// concrete format. Otherwise only a color-capable terminal gets styled output;
// buffers, pipes, files, NO_COLOR and TERM=dumb get plain text.
func DetectFormat(w io.Writer) Format {
	if f, err := ParseFormat(os.Getenv(EnvFormat)); err == nil && f != FormatAuto {
		return f
	}
	file, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(file).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
