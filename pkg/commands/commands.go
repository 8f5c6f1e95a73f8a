// Package commands provides the high-level command implementations for
// modtext.
//
// Each command lives in its own subdirectory:
//   - apply/      - Apply patches sources and writes targets
//   - check/      - Check resolves every rule without writing
//   - inspect/    - Inspect lists the mods of rule files
//   - diff/       - Diff previews changes as unified diffs
//   - initialize/ - Init writes a starter project configuration
//   - internal/   - Shared job pipeline
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"context"

	"github.com/arthur-debert/modtext/pkg/commands/apply"
	"github.com/arthur-debert/modtext/pkg/commands/check"
	"github.com/arthur-debert/modtext/pkg/commands/diff"
	"github.com/arthur-debert/modtext/pkg/commands/initialize"
	"github.com/arthur-debert/modtext/pkg/commands/inspect"
	"github.com/arthur-debert/modtext/pkg/types"
)

// Apply patches every job and writes the targets.
type ApplyOptions = apply.ApplyOptions

func Apply(ctx context.Context, opts ApplyOptions) (*types.CommandResult, error) {
	return apply.Apply(ctx, opts)
}

// Check resolves every job without writing.
type CheckOptions = check.CheckOptions

func Check(ctx context.Context, opts CheckOptions) (*types.CommandResult, error) {
	return check.Check(ctx, opts)
}

// Inspect parses rule files and describes their mods.
type InspectOptions = inspect.InspectOptions

func Inspect(opts InspectOptions) (*types.CommandResult, error) {
	return inspect.Inspect(opts)
}

// Diff shows each job's changes as a unified diff.
type DiffOptions = diff.DiffOptions

func Diff(ctx context.Context, opts DiffOptions) (*types.CommandResult, error) {
	return diff.Diff(ctx, opts)
}

// Init writes a starter modtext.toml.
type InitOptions = initialize.InitOptions

func Init(opts InitOptions) (*types.CommandResult, error) {
	return initialize.Init(opts)
}
