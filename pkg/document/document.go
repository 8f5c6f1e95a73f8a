package document

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/filesystem"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is configured
const DefaultEncoding = "utf-8"

// Document is a source document: its path and its cleaned lines.
type Document struct {
	Path  string
	Lines []string
}

// Len returns the number of lines
func (d *Document) Len() int {
	return len(d.Lines)
}

// Clean removes trailing newline characters, tabs and spaces from a line.
func Clean(line string) string {
	return strings.TrimRight(line, "\n\r\t ")
}

// LookupEncoding resolves an encoding label such as "utf-8", "latin1" or
// "windows-1252".
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncoding, "unsupported encoding %q", name)
	}
	return enc, nil
}

// Loader reads documents from a filesystem.
type Loader struct {
	FS       afero.Fs
	Encoding string
}

// NewLoader creates a loader; a nil fs means the OS filesystem.
func NewLoader(fs afero.Fs, encodingName string) *Loader {
	return &Loader{FS: filesystem.OrOS(fs), Encoding: encodingName}
}

// Load reads path into a Document.
func (l *Loader) Load(path string) (*Document, error) {
	lines, err := l.ReadLines(path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Lines: lines}, nil
}

// ReadLines reads and cleans every line of path.
func (l *Loader) ReadLines(path string) ([]string, error) {
	f, err := filesystem.OrOS(l.FS).Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path).InFile(path)
	}
	defer func() { _ = f.Close() }()

	lines, err := DecodeLines(f, l.Encoding)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}
	return lines, nil
}

// DecodeLines decodes r with the named encoding and returns its cleaned lines.
// Lines end at \n, \r\n or a lone \r. A final line without terminator
// counts as a line; an empty input has none. UTF-8 input is never repaired:
// a line with invalid bytes fails with ENCODING at that line.
func DecodeLines(r io.Reader, encodingName string) ([]string, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "cannot read lines")
	}

	if isUTF8(enc) {
		raw = bytes.TrimPrefix(raw, utf8BOM)
	} else {
		raw, _, err = transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrEncoding, "cannot decode input as %s", encodingLabel(encodingName))
		}
	}

	var lines []string
	for i, line := range splitLines(raw) {
		if !utf8.Valid(line) {
			return nil, errors.Newf(errors.ErrEncoding, "line is not valid %s", encodingLabel(encodingName)).
				At(i+1, 0)
		}
		lines = append(lines, Clean(string(line)))
	}
	return lines, nil
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func isUTF8(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)
	return err == nil && name == DefaultEncoding
}

func encodingLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultEncoding
	}
	return name
}

// splitLines cuts data at \n, \r\n and lone \r, dropping the terminators.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i])
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
		data = data[i+1:]
	}
	return lines
}

// FromString splits text the same way DecodeLines does.
func FromString(text string) []string {
	lines, _ := DecodeLines(strings.NewReader(text), DefaultEncoding)
	return lines
}
