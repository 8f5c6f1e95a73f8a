package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modtext/pkg/document"
	"github.com/arthur-debert/modtext/pkg/errors"
)

// Config is the resolved modtext configuration.
type Config struct {
	Output   Output   `koanf:"output" toml:"output" yaml:"output" json:"output"`
	Comments Comments `koanf:"comments" toml:"comments" yaml:"comments" json:"comments"`
	Run      Run      `koanf:"run" toml:"run" yaml:"run" json:"run"`
	Jobs     []Job    `koanf:"jobs" toml:"jobs,omitempty" yaml:"jobs,omitempty" json:"jobs,omitempty"`

	// Sources lists the files that were loaded, in load order
	Sources []string `koanf:"-" toml:"-" yaml:"-" json:"-"`
}

// Output controls how targets are written.
type Output struct {
	Newline  string `koanf:"newline" toml:"newline" yaml:"newline" json:"newline"`
	Encoding string `koanf:"encoding" toml:"encoding" yaml:"encoding" json:"encoding"`
	Annotate bool   `koanf:"annotate" toml:"annotate" yaml:"annotate" json:"annotate"`
}

// Comments holds the comment syntax tables.
type Comments struct {
	// Header lists the prefixes of rule file header comments
	Header []string `koanf:"header" toml:"header" yaml:"header" json:"header"`
	// Prefixes maps a target extension, without dot, to its line comment prefix
	Prefixes map[string]string `koanf:"prefixes" toml:"prefixes" yaml:"prefixes" json:"prefixes"`
}

// Run controls job execution.
type Run struct {
	Parallelism int `koanf:"parallelism" toml:"parallelism" yaml:"parallelism" json:"parallelism"`
}

// Job patches one source file with one rule file.
type Job struct {
	Name          string `koanf:"name" toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Rules         string `koanf:"rules" toml:"rules" yaml:"rules" json:"rules"`
	Source        string `koanf:"source" toml:"source" yaml:"source" json:"source"`
	Target        string `koanf:"target" toml:"target" yaml:"target" json:"target"`
	CommentPrefix string `koanf:"comment_prefix" toml:"comment_prefix,omitempty" yaml:"comment_prefix,omitempty" json:"comment_prefix,omitempty"`
}

// Label returns the job name, or its target when unnamed
func (j Job) Label() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Target
}

// Newline returns the parsed output newline convention
func (c *Config) Newline() document.Newline {
	n, _ := document.ParseNewline(c.Output.Newline)
	return n
}

// CommentPrefixFor returns the line comment prefix for a target path based
// on its extension, or "" when the type is unknown.
func (c *Config) CommentPrefixFor(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return ""
	}
	if prefix, ok := c.Comments.Prefixes[ext]; ok {
		return prefix
	}
	return c.Comments.Prefixes[strings.ToLower(ext)]
}

// Validate checks values that cannot be expressed by the types alone.
func (c *Config) Validate() error {
	if _, err := document.ParseNewline(c.Output.Newline); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.newline")
	}
	if _, err := document.LookupEncoding(c.Output.Encoding); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.encoding")
	}
	if c.Run.Parallelism < 1 {
		return errors.Newf(errors.ErrConfigValid, "run.parallelism must be at least 1, got %d", c.Run.Parallelism)
	}

	targets := make(map[string]string, len(c.Jobs))
	for i, job := range c.Jobs {
		label := fmt.Sprintf("jobs[%d]", i)
		if job.Name != "" {
			label = fmt.Sprintf("job %q", job.Name)
		}
		if job.Rules == "" || job.Source == "" || job.Target == "" {
			return errors.Newf(errors.ErrConfigValid, "%s needs rules, source and target", label)
		}
		target := filepath.Clean(job.Target)
		if other, ok := targets[target]; ok {
			return errors.Newf(errors.ErrConfigValid, "%s writes %s which %s already writes", label, job.Target, other)
		}
		targets[target] = label
	}
	return nil
}
