package testutil

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/modtext/pkg/config"
	"github.com/arthur-debert/modtext/pkg/filesystem"
	"github.com/arthur-debert/modtext/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Project is a test project on an in-memory filesystem.
type Project struct {
	Root string
	FS   afero.Fs
}

// NewProject creates an empty project rooted at /project.
func NewProject(t *testing.T) *Project {
	t.Helper()

	fs := filesystem.NewMemory()
	root := "/project"
	require.NoError(t, fs.MkdirAll(root, 0755))
	return &Project{Root: root, FS: fs}
}

// Path returns the absolute path of a project relative name
func (p *Project) Path(name string) string {
	return filepath.Join(p.Root, name)
}

// AddFile writes content to name and returns its absolute path.
func (p *Project) AddFile(t *testing.T, name, content string) string {
	t.Helper()

	path := p.Path(name)
	require.NoError(t, p.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(p.FS, path, []byte(content), 0644))
	return path
}

// AddLines writes lines joined by LF, each terminated.
func (p *Project) AddLines(t *testing.T, name string, lines ...string) string {
	t.Helper()
	return p.AddFile(t, name, strings.Join(lines, "\n")+"\n")
}

// Job builds a job whose paths live in the project.
func (p *Project) Job(name, rules, source, target string) config.Job {
	job := config.Job{Name: name, Rules: p.Path(rules), Source: p.Path(source)}
	if target != "" {
		job.Target = p.Path(target)
	}
	return job
}

// ReadLines reads name and splits it on LF, dropping the final terminator.
func (p *Project) ReadLines(t *testing.T, name string) []string {
	t.Helper()

	data, err := afero.ReadFile(p.FS, p.Path(name))
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// AssertFileLines checks that name holds exactly want.
func AssertFileLines(t *testing.T, p *Project, name string, want ...string) {
	t.Helper()
	require.Equal(t, want, p.ReadLines(t, name))
}

// AssertNoFile checks that name does not exist.
func AssertNoFile(t *testing.T, p *Project, name string) {
	t.Helper()

	exists, err := afero.Exists(p.FS, p.Path(name))
	require.NoError(t, err)
	require.False(t, exists, "%s should not exist", name)
}

// Recorder is an Observer that keeps every event. It is safe for concurrent
// jobs.
type Recorder struct {
	mu     sync.Mutex
	events []types.Event
}

// Observe implements types.Observer
func (r *Recorder) Observe(e types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Event(nil), r.events...)
}

// Count returns how many events of kind were recorded
func (r *Recorder) Count(kind types.EventKind) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
