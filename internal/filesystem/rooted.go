package filesystem

import (
	"io/fs"
	"path/filepath"
)

// RootedFileSystem resolves relative paths against a fixed root directory.
// Absolute paths pass through unchanged.
type RootedFileSystem struct {
	base FileSystem
	root string
}

// NewRooted wraps fs so that relative paths are interpreted from root.
func NewRooted(base FileSystem, root string) *RootedFileSystem {
	return &RootedFileSystem{base: base, root: filepath.Clean(root)}
}

// Root returns the directory relative paths are resolved against.
func (r *RootedFileSystem) Root() string {
	return r.root
}

func (r *RootedFileSystem) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.root, path)
}

func (r *RootedFileSystem) ReadFile(path string) ([]byte, error) {
	return r.base.ReadFile(r.resolve(path))
}

func (r *RootedFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return r.base.WriteFile(r.resolve(path), data, perm)
}

func (r *RootedFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return r.base.ReadDir(r.resolve(path))
}

func (r *RootedFileSystem) Mkdir(path string, perm fs.FileMode) error {
	return r.base.Mkdir(r.resolve(path), perm)
}

func (r *RootedFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return r.base.MkdirAll(r.resolve(path), perm)
}

func (r *RootedFileSystem) Stat(path string) (fs.FileInfo, error) {
	return r.base.Stat(r.resolve(path))
}

func (r *RootedFileSystem) Exists(path string) bool {
	return r.base.Exists(r.resolve(path))
}

func (r *RootedFileSystem) IsDir(path string) bool {
	return r.base.IsDir(r.resolve(path))
}

// Getwd reports the root, which acts as the working directory for callers.
func (r *RootedFileSystem) Getwd() (string, error) {
	return r.root, nil
}
