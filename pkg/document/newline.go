package document

import (
	"fmt"
	"runtime"
	"strings"
)

// Newline is the line terminator used when writing a document.
type Newline string

const (
	LF     Newline = "lf"
	CRLF   Newline = "crlf"
	Native Newline = "native"
)

// ParseNewline accepts lf, crlf or native (case-insensitive); "" means lf.
func ParseNewline(s string) (Newline, error) {
	switch Newline(strings.ToLower(strings.TrimSpace(s))) {
	case "", LF:
		return LF, nil
	case CRLF:
		return CRLF, nil
	case Native:
		return Native, nil
	default:
		return LF, fmt.Errorf("unknown newline convention %q (want lf, crlf or native)", s)
	}
}

// Terminator returns the bytes written after every line.
func (n Newline) Terminator() string {
	switch n {
	case CRLF:
		return "\r\n"
	case Native:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	default:
		return "\n"
	}
}
