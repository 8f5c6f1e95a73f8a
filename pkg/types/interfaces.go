package types

// Pather provides paths for modtext operations
type Pather interface {
	// WorkDir returns the directory relative paths in a project file resolve against
	WorkDir() string

	// ConfigDir returns the XDG config directory for modtext
	ConfigDir() string

	// StateDir returns the XDG state directory for modtext
	StateDir() string

	// ProjectConfigPath returns the project file in WorkDir, or "" if there is none
	ProjectConfigPath() string
}
