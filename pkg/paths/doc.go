// Package paths resolves the directories modtext works with.
//
// The project root is where modtext looks for its project file and where
// relative job paths resolve. It is taken from, in order:
//
//   - an explicit directory passed to New
//   - the MODTEXT_ROOT environment variable
//   - the root of the enclosing git repository
//   - the current working directory
//
// User configuration and state follow the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/modtext (override: MODTEXT_CONFIG_DIR)
//   - State:  $XDG_STATE_HOME/modtext, holding the log file
package paths
