package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modtext/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot sets the project root
	EnvRoot = "MODTEXT_ROOT"

	// EnvConfigDir overrides the XDG config directory for modtext
	EnvConfigDir = "MODTEXT_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Well-known names
const (
	// AppDirName is the directory name below the XDG base directories
	AppDirName = "modtext"

	// UserConfigFile is the user configuration file inside ConfigDir
	UserConfigFile = "config.toml"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "modtext.log"
)

// ProjectConfigFiles are the project file names looked up in the root, in
// order of preference.
var ProjectConfigFiles = []string{"modtext.toml", ".modtext.toml", "modtext.yaml", ".modtext.yaml"}

// Paths implements types.Pather.
type Paths struct {
	root         string
	configDir    string
	stateDir     string
	usedFallback bool
}

// New creates a Paths rooted at root. An empty root is discovered from the
// environment, the enclosing git repository or the working directory.
func New(root string) (*Paths, error) {
	p := &Paths{}

	if root == "" {
		found, usedFallback, err := findRoot()
		if err != nil {
			return nil, err
		}
		root = found
		p.usedFallback = usedFallback
	}

	absRoot, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", root)
	}
	p.root = absRoot

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		p.stateDir = filepath.Join(dir, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
	return p, nil
}

// findRoot returns the project root and whether the working directory was
// used as a fallback.
func findRoot() (string, bool, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return root, false, nil
	}
	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrInvalidInput, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// ExpandHome expands a leading ~ or ~/ to the home directory. ~user is kept.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is left alone
	return path
}

// WorkDir returns the project root
func (p *Paths) WorkDir() string {
	return p.root
}

// UsedFallback reports whether the working directory was used as the root
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the XDG config directory for modtext
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the XDG state directory for modtext
func (p *Paths) StateDir() string {
	return p.stateDir
}

// UserConfigPath returns the user configuration file path
func (p *Paths) UserConfigPath() string {
	return filepath.Join(p.configDir, UserConfigFile)
}

// LogFilePath returns the log file path
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ProjectConfigPath returns the first existing project file in the root, or
// "" when there is none.
func (p *Paths) ProjectConfigPath() string {
	for _, name := range ProjectConfigFiles {
		path := filepath.Join(p.root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Resolve makes path absolute relative to the project root, expanding ~.
func (p *Paths) Resolve(path string) string {
	path = ExpandHome(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.root, path)
}
