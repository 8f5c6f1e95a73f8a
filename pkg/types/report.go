package types

// CommandResult is what a modtext command hands to the output renderers.
type CommandResult struct {
	Command  string          `json:"command" yaml:"command"`
	Message  string          `json:"message,omitempty" yaml:"message,omitempty"`
	DryRun   bool            `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Jobs     []JobReport     `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	RuleSets []RuleSetReport `json:"ruleSets,omitempty" yaml:"ruleSets,omitempty"`
	Diffs    []DiffReport    `json:"diffs,omitempty" yaml:"diffs,omitempty"`
}

// JobReport describes one resolved or applied job.
type JobReport struct {
	Name        string            `json:"name" yaml:"name"`
	Rules       string            `json:"rules" yaml:"rules"`
	Source      string            `json:"source" yaml:"source"`
	Target      string            `json:"target,omitempty" yaml:"target,omitempty"`
	SourceLines int               `json:"sourceLines" yaml:"sourceLines"`
	OutputLines int               `json:"outputLines" yaml:"outputLines"`
	Written     bool              `json:"written" yaml:"written"`
	Insertions  []InsertionReport `json:"insertions" yaml:"insertions"`
}

// InsertionReport is one planned insertion. Line is the 1-based line of the
// source the text goes in front of; Before is that line's text, empty when
// the insertion is appended at the end.
type InsertionReport struct {
	Mod    string `json:"mod" yaml:"mod"`
	Line   int    `json:"line" yaml:"line"`
	Lines  int    `json:"lines" yaml:"lines"`
	Before string `json:"before,omitempty" yaml:"before,omitempty"`
	AtEnd  bool   `json:"atEnd,omitempty" yaml:"atEnd,omitempty"`
}

// RuleSetReport describes a parsed rule file.
type RuleSetReport struct {
	Path string      `json:"path" yaml:"path"`
	Mods []ModReport `json:"mods" yaml:"mods"`
}

// ModReport describes one mod of a rule file.
type ModReport struct {
	Description string   `json:"description" yaml:"description"`
	Line        int      `json:"line" yaml:"line"`
	Anchors     []string `json:"anchors,omitempty" yaml:"anchors,omitempty"`
	Includes    []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Text        []string `json:"text" yaml:"text"`
}

// DiffReport is the unified diff between a source and its patched output.
type DiffReport struct {
	Source  string `json:"source" yaml:"source"`
	Added   int    `json:"added" yaml:"added"`
	Removed int    `json:"removed" yaml:"removed"`
	Unified string `json:"unified" yaml:"unified"`
}
