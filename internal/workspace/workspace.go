// Package workspace locates the root descriptor and loads the project graph
// it declares.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-factory/internal/descriptor"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/models"
)

// ErrWorkspaceNotFound is returned when no descriptor is found walking up
// from the working directory.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Workspace is a directory holding a root descriptor. Every relative path
// of the build is interpreted from RootPath.
type Workspace struct {
	fs             filesystem.FileSystem
	descriptorFile string
	parser         *descriptor.Parser

	RootPath       string
	DescriptorPath string
	Root           *models.Project
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithDescriptorFile selects the descriptor to load. A bare file name is
// searched for upwards from the working directory; a path is used as given.
func WithDescriptorFile(file string) Option {
	return func(w *Workspace) {
		if file != "" {
			w.descriptorFile = file
		}
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{
		fs:             fs,
		descriptorFile: descriptor.FileName,
		parser:         descriptor.NewParser(descriptor.NewRegistry()),
	}

	for _, option := range options {
		option(ws)
	}

	return ws
}

// Detect finds the workspace root and parses its descriptor.
func (w *Workspace) Detect() error {
	descriptorPath, err := w.findDescriptor()
	if err != nil {
		return err
	}

	w.DescriptorPath = descriptorPath
	w.RootPath = filepath.Dir(descriptorPath)

	root, err := w.parser.ParseFile(w.fs, descriptorPath, descriptor.Options{
		File: filepath.Base(descriptorPath),
		Root: true,
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", descriptorPath, err)
	}

	w.Root = root
	return nil
}

// findDescriptor walks up the directory tree looking for the descriptor.
func (w *Workspace) findDescriptor() (string, error) {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if strings.ContainsAny(w.descriptorFile, `/\`) || filepath.IsAbs(w.descriptorFile) {
		path := w.descriptorFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if !w.fs.Exists(path) {
			return "", fmt.Errorf("%w: %s does not exist", ErrWorkspaceNotFound, w.descriptorFile)
		}
		return filepath.Clean(path), nil
	}

	return w.searchUp(cwd)
}

// searchUp returns the descriptor file in dir or its nearest ancestor.
func (w *Workspace) searchUp(dir string) (string, error) {
	start := filepath.Clean(dir)
	for dir = start; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, w.descriptorFile)
		if w.fs.Exists(candidate) && !w.fs.IsDir(candidate) {
			return candidate, nil
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrWorkspaceNotFound, w.descriptorFile, start)
		}
	}
}

// FileSystem returns a view of the filesystem rooted at the workspace.
func (w *Workspace) FileSystem() filesystem.FileSystem {
	return filesystem.NewRooted(w.fs, w.RootPath)
}

// Parser returns the parser whose registry holds the workspace projects.
func (w *Workspace) Parser() *descriptor.Parser {
	return w.parser
}

// Projects returns every project known so far, in registration order.
func (w *Workspace) Projects() []*models.Project {
	return w.parser.Registry().Projects()
}

// GetProject finds a project by name.
func (w *Workspace) GetProject(name string) (*models.Project, error) {
	if p, ok := w.parser.Registry().Lookup(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("project not found: %s", name)
}
