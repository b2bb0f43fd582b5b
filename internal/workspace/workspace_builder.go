package workspace

import (
	"path/filepath"

	"github.com/jakoblorz/go-factory/internal/descriptor"
	"github.com/jakoblorz/go-factory/internal/filesystem"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs         *filesystem.MockFileSystem
	root       string
	descriptor string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// SetDescriptor sets the content of the root factory.json
func (wb *WorkspaceBuilder) SetDescriptor(content string) *WorkspaceBuilder {
	wb.descriptor = content
	return wb
}

// AddSource adds a compilable C file relative to the workspace root
func (wb *WorkspaceBuilder) AddSource(path string) *WorkspaceBuilder {
	return wb.AddFile(path, []byte("int main(void) { return 0; }\n"))
}

// AddFile adds an arbitrary file relative to the workspace root
func (wb *WorkspaceBuilder) AddFile(path string, content []byte) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, filepath.FromSlash(path)), content)
	return wb
}

// Build finalizes the workspace and returns the filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	if wb.descriptor != "" {
		wb.fs.AddFile(filepath.Join(wb.root, descriptor.FileName), []byte(wb.descriptor))
	}
	return wb.fs
}

// FileSystem returns the mock filesystem
func (wb *WorkspaceBuilder) FileSystem() *filesystem.MockFileSystem {
	return wb.fs
}

// Root returns the workspace root directory
func (wb *WorkspaceBuilder) Root() string {
	return wb.root
}
