package git

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jakoblorz/go-factory/internal/filesystem"
)

// MockGitClient implements GitClient for testing. Remotes are in-memory file
// sets that a successful Clone copies into a MockFileSystem.
type MockGitClient struct {
	mu      sync.RWMutex
	fs      *filesystem.MockFileSystem
	root    string
	remotes map[string]map[string][]byte // url -> relative path -> content
	clones  []MockClone
	ctx     context.Context

	// Hooks for testing error scenarios
	CloneError error
}

// MockClone records one Clone call
type MockClone struct {
	URL       string
	Dest      string
	Succeeded bool
}

// NewMockGitClient creates a client that clones into fs, resolving relative
// destinations against root.
func NewMockGitClient(fs *filesystem.MockFileSystem, root string) *MockGitClient {
	return &MockGitClient{
		fs:      fs,
		root:    root,
		remotes: make(map[string]map[string][]byte),
		ctx:     context.Background(),
	}
}

// WithContext returns a client sharing remotes and recorded clones
func (m *MockGitClient) WithContext(ctx context.Context) GitClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = ctx
	return m
}

// AddRemote registers a repository reachable at url.
func (m *MockGitClient) AddRemote(url string, files map[string][]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remotes[url] = files
}

// Clone copies the remote's files below dest; unknown URLs fail like an
// unreachable host would.
func (m *MockGitClient) Clone(url, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ctx.Err(); err != nil {
		m.clones = append(m.clones, MockClone{URL: url, Dest: dest})
		return err
	}

	if m.CloneError != nil {
		m.clones = append(m.clones, MockClone{URL: url, Dest: dest})
		return m.CloneError
	}

	files, ok := m.remotes[url]
	if !ok {
		m.clones = append(m.clones, MockClone{URL: url, Dest: dest})
		return fmt.Errorf("failed to clone %s: repository not found", url)
	}

	target := dest
	if !filepath.IsAbs(target) {
		target = filepath.Join(m.root, dest)
	}
	m.fs.AddDir(target)
	for rel, content := range files {
		m.fs.AddFile(filepath.Join(target, filepath.FromSlash(rel)), content)
	}

	m.clones = append(m.clones, MockClone{URL: url, Dest: dest, Succeeded: true})
	return nil
}

// Clones returns every recorded Clone call in order
func (m *MockGitClient) Clones() []MockClone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]MockClone(nil), m.clones...)
}
