package modtext

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Patch text files with out-of-tree modifications"
	MsgApplyShort      = "Patch sources and write the targets"
	MsgCheckShort      = "Verify that every mod resolves, without writing"
	MsgInspectShort    = "List the mods of rule files"
	MsgDiffShort       = "Show the changes apply would make"
	MsgInitShort       = "Write a starter modtext.toml"
	MsgSyntaxShort     = "Show the rule file reference"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgDryRunNotice   = "[warning]DRY RUN - no target was written[/warning]"
	MsgVersionFormat  = "modtext %s\n  commit: %s\n  built:  %s\n"
	MsgNoCommandGiven = "no command specified"

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrUnknownJob   = "no configured job is named %q"
	MsgErrArgCount     = "expected %s, got %d arguments"
	MsgErrBadFormat    = "invalid --format: %w"
	MsgErrAnnotateBoth = "--annotate and --no-annotate cannot be combined"
	MsgErrNoTopics     = "the rule file reference is not available in this build"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Project configuration file (default: modtext.toml in the project root)"
	MsgFlagRoot          = "Project root (default: $MODTEXT_ROOT, the git root or the working directory)"
	MsgFlagFormat        = "Output format: auto, term, text, json or yaml"
	MsgFlagDryRun        = "Resolve every job without writing targets"
	MsgFlagJob           = "Run only the configured job with this name (repeatable)"
	MsgFlagAnnotate      = "Wrap inserted text in mod begin/end comments"
	MsgFlagNoAnnotate    = "Insert text without mod comments"
	MsgFlagCommentPrefix = "Comment prefix for mod comments, overriding the target type"
	MsgFlagNewline       = "Line terminator of written targets: lf, crlf or native"
	MsgFlagEncoding      = "Encoding of rule, source and target files"
	MsgFlagParallel      = "Number of jobs processed at once"
	MsgFlagForce         = "Overwrite an existing configuration file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/inspect-long.txt
	msgInspectLongRaw string
	MsgInspectLong    = strings.TrimSpace(msgInspectLongRaw)

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
