package ruleset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modtext/pkg/document"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/filesystem"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/mod"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
)

// DefaultCommentPrefixes are the markers of comment lines in the header.
var DefaultCommentPrefixes = []string{"#", "--", "//"}

// RuleSet is the ordered collection of mods declared in one rule file.
type RuleSet struct {
	Path string
	Mods []*mod.Descriptor
}

// Len returns the number of mods
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Mods)
}

// Options controls rule file parsing.
type Options struct {
	// FS is used for the rule file and its includes; nil means the OS filesystem
	FS afero.Fs
	// Encoding of the rule file and its includes; "" means utf-8
	Encoding string
	// CommentPrefixes mark header comment lines; nil means DefaultCommentPrefixes
	CommentPrefixes []string
	// BaseDir resolves relative @include paths. ParseFile defaults it to the
	// rule file's directory.
	BaseDir string
	// Observer receives engine events
	Observer types.Observer
}

type state int

const (
	atHeader state = iota
	atMod
	atText
)

func (s state) String() string {
	switch s {
	case atHeader:
		return "head"
	case atMod:
		return "mod"
	case atText:
		return "text"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseFile reads and parses the rule file at path.
func ParseFile(path string, opts Options) (*RuleSet, error) {
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	f, err := filesystem.OrOS(opts.FS).Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read rule file %s", path).InFile(path)
	}
	defer func() { _ = f.Close() }()

	rs, err := Parse(f, opts)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}
	rs.Path = path
	return rs, nil
}

// Parse reads a rule file from r.
func Parse(r io.Reader, opts Options) (*RuleSet, error) {
	logger := logging.GetLogger("ruleset")

	lines, err := document.DecodeLines(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	p := &parser{
		prefixes: opts.CommentPrefixes,
		modOpts: mod.Options{
			Includer: document.NewLoader(opts.FS, opts.Encoding),
			BaseDir:  opts.BaseDir,
			Observer: opts.Observer,
		},
		rs: &RuleSet{},
	}
	if p.prefixes == nil {
		p.prefixes = DefaultCommentPrefixes
	}

	for i, text := range lines {
		if err := p.feed(mod.SourceLine{Number: i + 1, Text: text}); err != nil {
			return nil, err
		}
		logger.Trace().Int("line", i+1).Stringer("state", p.state).Str("text", text).Msg("rule line")
	}
	if err := p.finish(); err != nil {
		return nil, err
	}

	logger.Debug().Int("mods", len(p.rs.Mods)).Msg("rule set parsed")
	return p.rs, nil
}

type parser struct {
	state      state
	prefixes   []string
	modOpts    mod.Options
	directives []mod.SourceLine
	text       []mod.SourceLine
	rs         *RuleSet
}

func (p *parser) feed(line mod.SourceLine) error {
	if p.state == atHeader {
		if p.isHeaderLine(line.Text) {
			return nil
		}
		p.state = atText
	}

	switch p.state {
	case atText:
		if mod.IsDeclaration(line.Text) {
			if err := p.finish(); err != nil {
				return err
			}
			p.directives = append(p.directives, line)
			p.state = atMod
			return nil
		}
		if len(p.directives) == 0 {
			return errors.Newf(errors.ErrStructural, "text must not precede a mod declaration: %q", line.Text).
				At(line.Number, 0)
		}
		p.text = append(p.text, line)
	case atMod:
		if strings.HasPrefix(line.Text, "@") {
			p.directives = append(p.directives, line)
			return nil
		}
		p.text = append(p.text, line)
		p.state = atText
	}
	return nil
}

func (p *parser) isHeaderLine(text string) bool {
	if text == "" {
		return true
	}
	for _, prefix := range p.prefixes {
		if prefix != "" && strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// finish turns the pending directive run and text into a descriptor.
func (p *parser) finish() error {
	if len(p.directives) == 0 {
		return nil
	}
	if n := len(p.text); n > 0 && p.text[n-1].Text == "" {
		p.text = p.text[:n-1]
	}

	d, err := mod.New(p.directives, p.text, p.modOpts)
	if err != nil {
		return err
	}
	p.rs.Mods = append(p.rs.Mods, d)
	p.directives = nil
	p.text = nil
	return nil
}
