package document

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/filesystem"
	"github.com/spf13/afero"
)

// Writer stores documents on a filesystem.
type Writer struct {
	FS       afero.Fs
	Encoding string
	Newline  Newline
}

// NewWriter creates a writer; a nil fs means the OS filesystem.
func NewWriter(fs afero.Fs, encodingName string, newline Newline) *Writer {
	return &Writer{FS: filesystem.OrOS(fs), Encoding: encodingName, Newline: newline}
}

// Encode joins lines, terminating each with the writer's newline, and
// encodes the result.
func (w *Writer) Encode(lines []string) ([]byte, error) {
	enc, err := LookupEncoding(w.Encoding)
	if err != nil {
		return nil, err
	}

	checkUTF8 := isUTF8(enc)
	terminator := w.Newline.Terminator()
	var b strings.Builder
	for i, line := range lines {
		if checkUTF8 && !utf8.ValidString(line) {
			return nil, errors.Newf(errors.ErrEncoding, "output line %d is not valid utf-8", i+1)
		}
		b.WriteString(line)
		b.WriteString(terminator)
	}

	data, err := enc.NewEncoder().Bytes([]byte(b.String()))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncoding, "cannot encode output as %s", w.Encoding)
	}
	return data, nil
}

// WriteLines encodes lines and atomically replaces path with them.
func (w *Writer) WriteLines(path string, lines []string) error {
	data, err := w.Encode(lines)
	if err != nil {
		return errors.WithPath(err, path)
	}
	if err := filesystem.WriteFileAtomic(filesystem.OrOS(w.FS), path, data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).InFile(path)
	}
	return nil
}
