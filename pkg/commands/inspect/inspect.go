// Package inspect implements the inspect command: parse rule files and list
// their mods.
package inspect

import (
	"github.com/arthur-debert/modtext/pkg/commands/internal"
	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/errors"
	"github.com/arthur-debert/modtext/pkg/logging"
	"github.com/arthur-debert/modtext/pkg/mod"
	"github.com/arthur-debert/modtext/pkg/ruleset"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
)

// InspectOptions defines the options for the Inspect command.
type InspectOptions struct {
	Config *config.Config
	// RuleFiles to parse, in order.
	RuleFiles []string
	FS        afero.Fs
	Observer  types.Observer
}

// Inspect parses each rule file and describes its mods.
func Inspect(opts InspectOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.inspect")
	if len(opts.RuleFiles) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one rule file is required")
	}

	settings := internal.Settings{Config: opts.Config, FS: opts.FS, Observer: opts.Observer}
	result := &types.CommandResult{Command: "inspect"}
	for _, path := range opts.RuleFiles {
		log.Debug().Str("rules", path).Msg("inspecting rule file")
		rs, err := internal.ParseRules(path, settings)
		if err != nil {
			return nil, err
		}
		result.RuleSets = append(result.RuleSets, Describe(rs))
	}
	return result, nil
}

// Describe turns a parsed rule set into its report form.
func Describe(rs *ruleset.RuleSet) types.RuleSetReport {
	report := types.RuleSetReport{Path: rs.Path, Mods: []types.ModReport{}}
	for _, m := range rs.Mods {
		report.Mods = append(report.Mods, describeMod(m))
	}
	return report
}

func describeMod(m *mod.Descriptor) types.ModReport {
	report := types.ModReport{
		Description: m.Description,
		Line:        m.Pos.Line,
		Text:        m.TextLines(),
	}
	for _, finder := range m.Anchors {
		report.Anchors = append(report.Anchors, finder.String())
	}
	seen := map[string]bool{}
	for _, line := range m.Lines {
		if line.Source != "" && !seen[line.Source] {
			seen[line.Source] = true
			report.Includes = append(report.Includes, line.Source)
		}
	}
	return report
}
